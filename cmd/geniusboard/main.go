package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/nhle/genius-board/internal/api"
	"github.com/nhle/genius-board/internal/app"
	"github.com/nhle/genius-board/internal/cache"
	"github.com/nhle/genius-board/internal/credential"
	"github.com/nhle/genius-board/internal/model"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("geniusboard is interactive; run it in a terminal")
	}

	cfgPath := model.DefaultConfigPath()
	cfg, err := model.LoadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	// First run: write the defaults out so the user has a file to edit.
	if _, statErr := os.Stat(cfgPath); os.IsNotExist(statErr) {
		if err := model.SaveConfig(cfgPath, cfg); err != nil {
			return fmt.Errorf("writing default config: %w", err)
		}
	}

	token, err := credential.APIToken()
	if err != nil {
		return fmt.Errorf("resolving API token: %w", err)
	}

	cachePath := cfg.Cache.Path
	if cachePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		cachePath = filepath.Join(home, ".config", "geniusboard", "cache.db")
	}
	if err := os.MkdirAll(filepath.Dir(cachePath), 0o755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	store, err := cache.Open(cachePath)
	if err != nil {
		return fmt.Errorf("opening cache: %w", err)
	}
	defer store.Close()

	client := api.NewClient(
		cfg.API.BaseURL,
		token,
		time.Duration(cfg.API.TimeoutSec)*time.Second,
	)

	p := tea.NewProgram(
		app.New(client, store, cfg),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}

	return nil
}
