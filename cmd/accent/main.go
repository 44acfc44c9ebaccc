package main

import (
	"flag"
	"fmt"
	"os"

	"simple-watchface/internal/config"
	"simple-watchface/internal/settings"
)

func main() {
	configFile := flag.String("config", "", "Path to config file (.json or .yaml)")
	set := flag.String("set", "", "New accent colour, #RRGGBB or #AARRGGBB")
	reset := flag.Bool("reset", false, "Restore the default accent colour")
	flag.Parse()

	cfg, err := config.FromFile(*configFile, config.Flags{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	store, err := settings.Open(cfg.SettingsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	switch {
	case *reset:
		err = store.Set(settings.DefaultAccent)
	case *set != "":
		var argb uint32
		if argb, err = settings.ParseColor(*set); err == nil {
			err = store.Set(argb)
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s  (%s)\n", settings.FormatColor(store.Get()), cfg.SettingsPath)
}
