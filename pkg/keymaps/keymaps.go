package keymaps

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type KeyDefinition struct {
	DefaultKey string
	Help       string
}

var KeyDefinitions = map[string]KeyDefinition{
	"ShowHelp":        {"?", "show/hide help"},
	"QuitApp":         {"q", "quit"},
	"NextTab":         {"tab", "next tab"},
	"PrevTab":         {"shift+tab", "previous tab"},
	"ToggleStatus":    {"space", "toggle done / alarm on-off"},
	"OpenSubtasks":    {"enter", "open subtasks"},
	"AddItem":         {"a", "add task / alarm"},
	"EditTask":        {"e", "edit task"},
	"DeleteItem":      {"d", "delete task / alarm"},
	"SearchTasks":     {"/, ctrl+f", "search tasks"},
	"CycleCategory":   {"c", "cycle category filter"},
	"CyclePriority":   {"p", "cycle priority filter"},
	"ClearFilters":    {"x", "clear filters"},
	"ToggleSortBy":    {"s", "cycle sort by"},
	"ToggleGroupBy":   {"g", "cycle group by"},
	"ToggleSortOrder": {"o", "toggle sort order"},
	"StopAlarms":      {"S", "stop ringing alarms"},
	"SnoozeAlarms":    {"z", "snooze ringing alarms"},
	"IncrementDhikr":  {"+, =", "count dhikr"},
	"ResetDhikr":      {"0", "reset dhikr"},
	"Refresh":         {"r", "refresh prayer times and verse"},
}

type KeyMap struct {
	ShowHelp        key.Binding
	QuitApp         key.Binding
	NextTab         key.Binding
	PrevTab         key.Binding
	ToggleStatus    key.Binding
	OpenSubtasks    key.Binding
	AddItem         key.Binding
	EditTask        key.Binding
	DeleteItem      key.Binding
	SearchTasks     key.Binding
	CycleCategory   key.Binding
	CyclePriority   key.Binding
	ClearFilters    key.Binding
	ToggleSortBy    key.Binding
	ToggleGroupBy   key.Binding
	ToggleSortOrder key.Binding
	StopAlarms      key.Binding
	SnoozeAlarms    key.Binding
	IncrementDhikr  key.Binding
	ResetDhikr      key.Binding
	Refresh         key.Binding
}

func (km *KeyMap) bindings() map[string]*key.Binding {
	return map[string]*key.Binding{
		"ShowHelp":        &km.ShowHelp,
		"QuitApp":         &km.QuitApp,
		"NextTab":         &km.NextTab,
		"PrevTab":         &km.PrevTab,
		"ToggleStatus":    &km.ToggleStatus,
		"OpenSubtasks":    &km.OpenSubtasks,
		"AddItem":         &km.AddItem,
		"EditTask":        &km.EditTask,
		"DeleteItem":      &km.DeleteItem,
		"SearchTasks":     &km.SearchTasks,
		"CycleCategory":   &km.CycleCategory,
		"CyclePriority":   &km.CyclePriority,
		"ClearFilters":    &km.ClearFilters,
		"ToggleSortBy":    &km.ToggleSortBy,
		"ToggleGroupBy":   &km.ToggleGroupBy,
		"ToggleSortOrder": &km.ToggleSortOrder,
		"StopAlarms":      &km.StopAlarms,
		"SnoozeAlarms":    &km.SnoozeAlarms,
		"IncrementDhikr":  &km.IncrementDhikr,
		"ResetDhikr":      &km.ResetDhikr,
		"Refresh":         &km.Refresh,
	}
}

// BuildKeyMap applies configOverrides on top of the default bindings.
// Unknown action names are ignored.
func BuildKeyMap(configOverrides map[string]string) KeyMap {
	km := KeyMap{}
	targets := km.bindings()
	for action, def := range KeyDefinitions {
		keyStr := def.DefaultKey
		if override, exists := lookup(configOverrides, action); exists && override != "" {
			keyStr = override
		}
		if b, ok := targets[action]; ok {
			*b = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		}
	}
	return km
}

// lookup matches action names case-insensitively since viper lowercases keys
func lookup(overrides map[string]string, action string) (string, bool) {
	if v, ok := overrides[action]; ok {
		return v, true
	}
	for k, v := range overrides {
		if strings.EqualFold(k, action) {
			return v, true
		}
	}
	return "", false
}

func parseKeyBinding(keyStr, defaultKey, helpText string) key.Binding {
	if strings.TrimSpace(keyStr) == "" {
		keyStr = defaultKey
	}

	// Handle multiple keys separated by commas
	var keys []string
	for _, k := range strings.Split(keyStr, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
		if k == "space" {
			keys = append(keys, " ")
		}
	}
	if len(keys) == 0 {
		// a lone "," binds the comma key
		keys = []string{","}
	}

	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(keys[0], helpText),
	)
}

// GetDefaultKeyMappings returns the default key mappings for configuration
func GetDefaultKeyMappings() map[string]string {
	keyMappings := make(map[string]string)
	for action, def := range KeyDefinitions {
		keyMappings[action] = def.DefaultKey
	}
	return keyMappings
}

// ShortHelp is shown in the status bar
func (km KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.NextTab, km.AddItem, km.ToggleStatus, km.SearchTasks, km.ShowHelp, km.QuitApp}
}

// FullHelp is shown by the help screen, one column per concern
func (km KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{km.NextTab, km.PrevTab, km.ShowHelp, km.QuitApp},
		{km.AddItem, km.EditTask, km.DeleteItem, km.ToggleStatus, km.OpenSubtasks},
		{km.SearchTasks, km.CycleCategory, km.CyclePriority, km.ClearFilters},
		{km.ToggleSortBy, km.ToggleGroupBy, km.ToggleSortOrder},
		{km.StopAlarms, km.SnoozeAlarms, km.IncrementDhikr, km.ResetDhikr, km.Refresh},
	}
}
