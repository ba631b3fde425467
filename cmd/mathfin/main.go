package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/google/subcommands"

	"github.com/meenmo/mathfinance/cmd/mathfin/internal/cli"
	"github.com/meenmo/mathfinance/config"
	"github.com/meenmo/mathfinance/logging"
)

var (
	configPath = flag.String("config", "", "Config file (yaml, toml or json); MATHFIN_* environment variables override it")
	logLevel   = flag.String("log-level", "", "Log level (debug, info, warn, error); overrides log.level")
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cli.Register(commander)

	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		exitError(fmt.Sprintf("load config: %v", err))
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
		if err := cfg.Validate(); err != nil {
			exitError(err.Error())
		}
	}

	logger, err := logging.New(cfg.Log.Logging())
	if err != nil {
		exitError(fmt.Sprintf("create logger: %v", err))
	}

	status := commander.Execute(context.Background(), cli.NewEnv(cfg, logger))
	_ = logger.Sync()
	os.Exit(int(status))
}

func exitError(msg string) {
	b, _ := json.Marshal(map[string]string{"error": msg})
	fmt.Println(string(b))
	os.Exit(1)
}
