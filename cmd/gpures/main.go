// Command gpures inspects, converts and loads GPU resource descriptors.
//
// Usage:
//
//	gpures [-config gpures.toml] [-log-level debug] <command> [args]
//
// Commands:
//
//	backends            list declared backends and which are compiled in
//	types               list registered asset kinds
//	inspect FILE...     decode descriptor files and print a summary
//	convert IN OUT      re-encode a descriptor (format from OUT or -to)
//	load [DIR]          build every descriptor in DIR on a device
//	watch [DIR]         report descriptor changes below DIR until interrupted
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
)

// errUsage marks errors caused by bad arguments; main prints usage for them.
var errUsage = errors.New("usage")

type command struct {
	name  string
	usage string
	run   func(ctx context.Context, app *app, args []string) error
}

var commands = []command{
	{"backends", "backends", runBackends},
	{"types", "types", runTypes},
	{"inspect", "inspect FILE...", runInspect},
	{"convert", "convert [-to FORMAT] [-max N] IN OUT", runConvert},
	{"load", "load [-backend NAME] [DIR]", runLoad},
	{"watch", "watch [DIR]", runWatch},
}

// app carries the resolved configuration into subcommands.
type app struct {
	cfg config
	log *log.Logger
}

func main() {
	var (
		configPath = flag.String("config", defaultConfigFile, "config file")
		logLevel   = flag.String("log-level", "", "log level (debug, info, warn, error)")
		workers    = flag.Int("workers", 0, "decode workers (0 uses the config or GOMAXPROCS)")
	)
	flag.Usage = usage
	flag.Parse()

	explicit := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			explicit = true
		}
	})
	cfg, err := loadConfig(*configPath, explicit)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log level: %v\n", err)
		os.Exit(2)
	}

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}
	cmd, ok := findCommand(args[0])
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n", args[0])
		usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cmd.run(ctx, &app{cfg: cfg, log: logger}, args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "usage: gpures %s\n", cmd.usage)
			os.Exit(2)
		}
		logger.Error(cmd.name+" failed", "err", err)
		os.Exit(1)
	}
}

func findCommand(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: gpures [flags] <command> [args]")
	fmt.Fprintln(os.Stderr, "\ncommands:")
	for _, c := range commands {
		fmt.Fprintf(os.Stderr, "  %s\n", c.usage)
	}
	fmt.Fprintln(os.Stderr, "\nflags:")
	flag.PrintDefaults()
}
