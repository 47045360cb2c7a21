package cli

import (
	"flag"
	"time"

	"ips/pkg/commands"
	"ips/pkg/task"
)

// Args represents parsed command line arguments
type Args struct {
	ConfigPath string
	Verbose    bool

	// Task operations
	AddTask      string
	CategoryFlag string
	PriorityFlag string
	DateFlag     string
	SubtasksFlag string

	// Purge operations
	Purge      bool
	YesFlag    bool
	DoneFlag   bool
	UndoneFlag bool

	// Import/Export operations
	ImportFile string
	ExportFile string
	TypeFlag   string

	// Alarm operations
	AlarmTime string
	Watch     bool
}

// NewFlagSet binds every flag to args
func NewFlagSet(name string, args *Args) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)

	fs.StringVar(&args.ConfigPath, "config", "", "Path to configuration file")
	fs.BoolVar(&args.Verbose, "verbose", false, "Enable verbose logging")

	// Task operations
	fs.StringVar(&args.AddTask, "add", "", "Add a new task")
	fs.StringVar(&args.CategoryFlag, "category", "", "Task category (Prayer, Quran Reading, Fasting, Charity, Work, Personal)")
	fs.StringVar(&args.PriorityFlag, "priority", "", "Task priority (low, medium, high)")
	fs.StringVar(&args.DateFlag, "date", "", "Due date for task (YYYY-MM-DD format)")
	fs.StringVar(&args.SubtasksFlag, "subtasks", "", "Comma separated subtasks")

	// Purge operations
	fs.BoolVar(&args.Purge, "purge", false, "Delete tasks matching --category, --date, --done or --undone")
	fs.BoolVar(&args.YesFlag, "yes", false, "Skip confirmation")
	fs.BoolVar(&args.DoneFlag, "done", false, "Filter done tasks")
	fs.BoolVar(&args.UndoneFlag, "undone", false, "Filter undone tasks")

	// Import/Export operations
	fs.StringVar(&args.ImportFile, "import", "", "Import tasks from file")
	fs.StringVar(&args.ExportFile, "export", "", "Export tasks to file")
	fs.StringVar(&args.TypeFlag, "type", "", "Import/export file type (json, txt)")

	// Alarm operations
	fs.StringVar(&args.AlarmTime, "alarm", "", "Set an alarm (HH:MM or YYYY-MM-DDTHH:MM)")
	fs.BoolVar(&args.Watch, "watch", false, "Ring alarms in the terminal without the UI")

	return fs
}

// ParseArgs parses command line arguments and returns Args struct
func ParseArgs(arguments []string) (*Args, error) {
	args := &Args{}
	if err := NewFlagSet("ips", args).Parse(arguments); err != nil {
		return nil, err
	}
	return args, nil
}

// HandleCommands runs the requested one-shot command. handled is false when
// no command flag was given and the UI should start instead.
func HandleCommands(app *commands.App, args *Args) (handled bool, exitCode int, err error) {
	switch {
	case args.AddTask != "":
		err = commands.HandleAddTask(app, commands.AddOptions{
			Text:     args.AddTask,
			Category: args.CategoryFlag,
			Priority: args.PriorityFlag,
			DueDate:  args.DateFlag,
			Subtasks: args.SubtasksFlag,
		})

	case args.Purge:
		err = commands.HandlePurgeCommand(app, task.PurgeFilter{
			Category: args.CategoryFlag,
			DueDate:  args.DateFlag,
			Done:     args.DoneFlag,
			Undone:   args.UndoneFlag,
		}, args.YesFlag)

	case args.ImportFile != "":
		err = commands.HandleImportCommand(app, args.ImportFile, args.TypeFlag)

	case args.ExportFile != "":
		err = commands.HandleExportCommand(app, args.ExportFile, args.TypeFlag)

	case args.AlarmTime != "":
		err = commands.HandleAlarmCommand(app, args.AlarmTime)

	case args.Watch:
		return true, commands.HandleWatchCommand(app, 5*time.Second), nil

	default:
		// No CLI command was handled
		return false, 0, nil
	}

	if err != nil {
		return true, 1, err
	}
	return true, 0, nil
}
