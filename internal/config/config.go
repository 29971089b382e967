package config

import (
	"os"
	"path/filepath"
	"time"
)

type Config struct {
	TmuxBin        string
	RecorderBin    string
	Shell          string
	CommandTimeout time.Duration
	CatalogPath    string

	// Demo pacing defaults; scripts override these per scope.
	TapDelay time.Duration
	EndDelay time.Duration

	// Requested window geometry for recordings.
	Columns  int
	Rows     int
	WidthPx  int
	HeightPx int
}

func DefaultConfig() Config {
	return Config{
		TmuxBin:        "tmux",
		RecorderBin:    "termsvg",
		Shell:          defaultShell(),
		CommandTimeout: 5 * time.Second,
		CatalogPath:    defaultCatalogPath(),
		TapDelay:       50 * time.Millisecond,
		EndDelay:       1 * time.Second,
		Columns:        100,
		Rows:           100,
		WidthPx:        710,
		HeightPx:       513,
	}
}

func defaultShell() string {
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh
	}
	return "/bin/zsh"
}

func defaultCatalogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "codeanim.db"
	}
	return filepath.Join(home, ".local", "state", "codeanim", "captures.db")
}
