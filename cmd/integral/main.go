// Package main is the entry point for the Integral workspace.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/hy4ri/integral/internal/ai"
	"github.com/hy4ri/integral/internal/auth"
	"github.com/hy4ri/integral/internal/calendar"
	"github.com/hy4ri/integral/internal/config"
	"github.com/hy4ri/integral/internal/ics"
	"github.com/hy4ri/integral/internal/logger"
	"github.com/hy4ri/integral/internal/storage"
	"github.com/hy4ri/integral/internal/store"
	"github.com/hy4ri/integral/internal/tui"
)

const version = "0.1.0"

const helpText = `integral - Terminal workspace: calendar, tasks and AI helpers

USAGE:
    integral [OPTIONS]

OPTIONS:
    -h, --help              Show this help message
    -v, --version           Show version information
    --init                  Create a template config file
    --month, --week, --day  Initial calendar view
    --data FILE             Use FILE as the workspace database
    --export-ics FILE       Write all events to an iCalendar file and exit
    --set-api-key KEY       Store the AI API key in the system keyring and exit
    --clear-api-key         Remove the AI API key from the system keyring and exit

CONFIGURATION:
    Config file: ~/.config/integral/config.yaml
    Data:        ~/.local/share/integral/integral.db
    Log:         ~/.local/share/integral/integral.log

    The AI key is read from OPENAI_API_KEY (a .env file in the working
    directory is honoured), then the system keyring, then the config file.

    Log in with demo@example.com / password or sign up for a local account.

KEYBINDINGS:
    Tabs:
        1/2/3       Dashboard / Calendar / Tasks
        Tab         Next tab

    Calendar:
        h/l         Previous/next month, week or day
        t           Today
        m/w/d       Month / week / day view
        j/k         Select event
        a/e/x       Add / edit / delete event
        y           Copy event
        /           Search
        T           Show/hide task events
        s           Toggle sidebar
        F           Add focus blocks

    Tasks:
        a/e/x       Add / edit / delete task
        Space       Complete/uncomplete
        c           Add to calendar
        r           AI reminder suggestion
        R           AI task recommendations

    Other:
        ?           Show help
        O           Log out
        q           Quit
`

const configTemplate = `# Integral Configuration
# Location: ~/.config/integral/config.yaml

ai:
  # Any OpenAI-compatible chat completions endpoint
  base_url: "https://api.openai.com/v1"
  model: "gpt-3.5-turbo"
  # Prefer OPENAI_API_KEY or 'integral --set-api-key' over storing the key here
  # api_key: ""
  # Minimum spacing between AI requests
  min_interval: 2s

storage:
  # path: "/path/to/integral.db"

ui:
  # Initial calendar view: day, week or month
  default_view: week
  # Terminals narrower than this use the compact layout
  narrow_width: 100
  show_tasks: true

notify:
  enabled: true
  # Cron spec for the upcoming-event check
  schedule: "@every 1m"
  lead_minutes: 10

log:
  level: info
  encoding: json
`

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		showHelp    bool
		showVersion bool
		initConfig  bool
		viewMonth   bool
		viewWeek    bool
		viewDay     bool
		dataPath    string
		exportPath  string
		setAPIKey   string
		clearAPIKey bool
	)

	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version")
	flag.BoolVar(&showVersion, "v", false, "Show version (shorthand)")
	flag.BoolVar(&initConfig, "init", false, "Create template config file")
	flag.BoolVar(&viewMonth, "month", false, "Start in month view")
	flag.BoolVar(&viewWeek, "week", false, "Start in week view")
	flag.BoolVar(&viewDay, "day", false, "Start in day view")
	flag.StringVar(&dataPath, "data", "", "Workspace database file")
	flag.StringVar(&exportPath, "export-ics", "", "Export events to an iCalendar file")
	flag.StringVar(&setAPIKey, "set-api-key", "", "Store the AI API key in the keyring")
	flag.BoolVar(&clearAPIKey, "clear-api-key", false, "Remove the AI API key from the keyring")

	flag.Usage = func() {
		fmt.Print(helpText)
	}

	flag.Parse()

	if showHelp {
		fmt.Print(helpText)
		return nil
	}

	if showVersion {
		fmt.Printf("integral version %s\n", version)
		return nil
	}

	if initConfig {
		return createConfigTemplate()
	}

	if setAPIKey != "" {
		if err := config.SaveAPIKey(setAPIKey); err != nil {
			return err
		}
		fmt.Println("API key stored in the system keyring.")
		return nil
	}

	if clearAPIKey {
		if err := config.ClearAPIKey(); err != nil {
			return err
		}
		fmt.Println("API key removed from the system keyring.")
		return nil
	}

	if err := config.LoadEnv(); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if dataPath != "" {
		cfg.Storage.Path = dataPath
	}

	mode, err := calendar.ParseViewMode(cfg.UI.DefaultView)
	if err != nil {
		mode = calendar.ViewWeek
	}
	switch {
	case viewMonth:
		mode = calendar.ViewMonth
	case viewWeek:
		mode = calendar.ViewWeek
	case viewDay:
		mode = calendar.ViewDay
	}

	logPath, err := config.LogPath()
	if err != nil {
		return err
	}
	log, closeLog, err := logger.New(logger.Config{Level: cfg.Log.Level, Encoding: cfg.Log.Encoding, Path: logPath})
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	backend, err := openBackend(cfg, log)
	if err != nil {
		return err
	}
	ws := store.Open(backend, time.Now, log)
	defer func() {
		if err := ws.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to save workspace: %v\n", err)
		}
	}()

	if exportPath != "" {
		events := ws.Events.All()
		if err := ics.WriteFile(exportPath, events, time.Now()); err != nil {
			return err
		}
		fmt.Printf("Exported %d events to %s\n", len(events), exportPath)
		return nil
	}

	return runApp(cfg, ws, backend, mode, log)
}

// openBackend opens the bbolt database behind a Resilient wrapper. When the
// file cannot be opened the workspace runs from memory for this session.
func openBackend(cfg *config.Config, log *zap.Logger) (storage.Backend, error) {
	path, err := cfg.StoragePath()
	if err != nil {
		return nil, err
	}

	db, err := storage.OpenBolt(path)
	if err != nil {
		log.Warn("database unavailable, changes will not be saved", zap.String("path", path), zap.Error(err))
		fmt.Fprintf(os.Stderr, "Warning: %v; running without persistence\n", err)
		return storage.NewMemory(), nil
	}
	log.Info("workspace opened", zap.String("path", path))
	return storage.NewResilient(db, log.Named("storage")), nil
}

// createConfigTemplate creates a template configuration file.
func createConfigTemplate() error {
	path, err := config.ConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		fmt.Printf("Config file already exists: %s\n", path)
		fmt.Print("Overwrite? [y/N]: ")

		var response string
		fmt.Scanln(&response)

		if response != "y" && response != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to check config file: %w", err)
	}

	if err := os.WriteFile(path, []byte(configTemplate), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Config file created: %s\n\n", path)
	fmt.Println("Next steps:")
	fmt.Println("  1. Optionally run 'integral --set-api-key KEY' to enable AI helpers")
	fmt.Println("  2. Run 'integral' to start")

	return nil
}

// runApp starts the main TUI application.
func runApp(cfg *config.Config, ws *store.Workspace, backend storage.Backend, mode calendar.ViewMode, log *zap.Logger) error {
	client := ai.NewClient(ai.Config{
		BaseURL:     cfg.AI.BaseURL,
		Model:       cfg.AI.Model,
		APIKey:      cfg.APIKey(),
		MinInterval: cfg.AI.MinInterval,
	}, log.Named("ai"))

	app := tui.NewApp(tui.Deps{
		Workspace: ws,
		Auth:      auth.NewService(backend, log.Named("auth")),
		AI:        client,
		Config:    cfg,
		Log:       log.Named("tui"),
	}, mode, time.Now)
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if cfg.Notify.Enabled {
		c := cron.New()
		if _, err := c.AddFunc(cfg.Notify.Schedule, func() {
			p.Send(tui.CheckDue(time.Now()))
		}); err != nil {
			return fmt.Errorf("invalid notify schedule %q: %w", cfg.Notify.Schedule, err)
		}
		c.Start()
		defer c.Stop()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return nil
}
