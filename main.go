package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"sdiary/pkg/cli"
	"sdiary/pkg/config"
	"sdiary/pkg/state"
	"sdiary/pkg/storage"
	"sdiary/pkg/ui"
	"sdiary/pkg/utils"
)

func main() {
	args := cli.ParseArgs()

	utils.InitLogger(args.Verbose)
	defer utils.CloseLogger()

	cfg, err := config.Load(args.ConfigPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	backend, err := openBackend(cfg)
	if err != nil {
		fmt.Printf("Error opening storage: %v\n", err)
		os.Exit(1)
	}
	defer backend.Close()

	store := state.New(backend)

	// One-shot CLI commands skip the TUI entirely
	if cli.HandleCommands(store, args) {
		return
	}

	p := tea.NewProgram(ui.NewModel(store, cfg), tea.WithAltScreen())
	store.Subscribe(func() {
		p.Send(ui.RefreshMsg{})
	})

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}

func openBackend(cfg config.Config) (storage.Backend, error) {
	switch cfg.Driver {
	case "", "sqlite":
		return storage.OpenSQLite(cfg.Database)
	case "postgres":
		return storage.OpenPostgres(cfg.PostgresDSN)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
