package main

import (
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"ips/pkg/alarm"
	"ips/pkg/cli"
	"ips/pkg/commands"
	"ips/pkg/config"
	"ips/pkg/database"
	"ips/pkg/dhikr"
	"ips/pkg/inspiration"
	"ips/pkg/prayer"
	"ips/pkg/task"
	"ips/pkg/ui"
	"ips/pkg/utils"
)

func main() {
	os.Exit(run())
}

func run() int {
	args, err := cli.ParseArgs(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	utils.InitLogger(args.Verbose)
	defer utils.CloseLogger()

	cfg, styles, err := config.Load(args.ConfigPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		return 1
	}
	utils.Log("Config loaded from %s", cfg.Path)

	kv, err := database.Open(cfg.Store.Driver, cfg.Store.DSN)
	if err != nil {
		fmt.Printf("Error opening %s store: %v\n", cfg.Store.Driver, err)
		return 1
	}
	defer kv.Close()

	tasks := task.NewStore(kv)
	alarms := alarm.NewScheduler(kv, alarm.WithSnooze(cfg.Alarm.SnoozeInterval()))

	app := &commands.App{Tasks: tasks, Alarms: alarms, Out: os.Stdout, In: os.Stdin}
	handled, code, err := cli.HandleCommands(app, args)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
	}
	if handled {
		return code
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	deps := ui.Deps{
		Tasks:  tasks,
		Alarms: alarms,
		Dhikr:  dhikr.NewCounter(kv),
		Prayer: prayer.NewClient(prayer.Config{
			BaseURL: cfg.Prayer.BaseURL,
			City:    cfg.Prayer.City,
			Country: cfg.Prayer.Country,
			Method:  cfg.Prayer.Method,
			Timeout: cfg.HTTPTimeout,
		}),
		Verses: inspiration.NewClient(cfg.Quran.BaseURL, cfg.HTTPTimeout, rng),
		Quote:  inspiration.DailyQuote(rng),
	}

	p := tea.NewProgram(ui.NewModel(deps, cfg, styles), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		return 1
	}
	return 0
}
