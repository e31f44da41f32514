package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Faheem2407/go-todo-app/internal/client"
	"github.com/Faheem2407/go-todo-app/internal/client/ui"
)

func main() {
	serverFlag := flag.String("server", "", "Override server base URL (e.g. https://api.example.com)")
	configFlag := flag.String("config", "", "Path to config file")
	flag.Parse()

	dir, err := client.ConfigDir()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	configPath := *configFlag
	if configPath == "" {
		configPath = filepath.Join(dir, "config.toml")
	}

	cfg, err := client.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	if *serverFlag != "" {
		cfg.ServerURL = *serverFlag
	}

	api := client.New(cfg)
	session := client.NewSessionController(filepath.Join(dir, "session.json"))
	session.Load()

	if err := ui.Run(context.Background(), api, session); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
