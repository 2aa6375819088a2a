package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/teamkeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   path/DSN of the local sqlite database
//	-t int      bootstrap timeout in seconds
//	-n string   device display name
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-t", "-n"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "path to the local database")
	fs.StringVar(&cfg.DeviceName, "n", cfg.DeviceName, "device display name")
	bootstrapTimeout := fs.Int("t", int(cfg.BootstrapTimeout.Seconds()), "bootstrap timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.BootstrapTimeout = time.Duration(*bootstrapTimeout) * time.Second
}
