package main

import "flag"

type AppFlags struct {
	ConfigFile string
	Once       bool
}

func ParseFlags() AppFlags {
	configFile := flag.String("config", "", "Path to the YAML/JSON configuration file. If not set, searches default locations.")
	configFileAlias := flag.String("c", "", "Alias for -config")

	once := flag.Bool("once", false, "Run a single update and exit instead of starting the server")

	flag.Parse()

	flags := AppFlags{Once: *once}

	if *configFile != "" {
		flags.ConfigFile = *configFile
	} else if *configFileAlias != "" {
		flags.ConfigFile = *configFileAlias
	}

	return flags
}
