package main

import (
	"context"
	"os"
	"runtime/debug"

	"github.com/charmbracelet/kanban/cmd/kanban/admin"
	"github.com/charmbracelet/kanban/cmd/kanban/remote"
	"github.com/charmbracelet/kanban/cmd/kanban/serve"
	"github.com/charmbracelet/kanban/cmd/kanban/user"
	"github.com/charmbracelet/kanban/pkg/config"
	logr "github.com/charmbracelet/kanban/pkg/log"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"
)

var (
	// Version contains the application version number. It's set via ldflags
	// when building.
	Version = ""

	// CommitSHA contains the SHA of the commit that this application was built
	// against. It's set via ldflags when building.
	CommitSHA = ""
)

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "kanban",
		Short:        "A multi-tenant kanban server and its command line client",
		Long:         "Kanban serves boards, organizations and teams over a REST API, and talks to such a server from the command line.",
		SilenceUsage: true,
	}
	rootCmd.SetOut(os.Stdout)
	rootCmd.SetErr(os.Stderr)

	rootCmd.AddGroup(
		&cobra.Group{ID: "server", Title: "Server Commands:"},
		&cobra.Group{ID: "client", Title: "Client Commands:"},
	)

	for _, c := range []*cobra.Command{serve.Command, admin.Command, user.Command} {
		c.GroupID = "server"
		rootCmd.AddCommand(c)
	}
	for _, c := range remote.Commands() {
		c.GroupID = "client"
		rootCmd.AddCommand(c)
	}
	rootCmd.AddCommand(manCommand(rootCmd))

	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	version := Version
	if version == "" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Sum != "" {
			version = info.Main.Version
		} else {
			version = "unknown (built from source)"
		}
	}
	rootCmd.Version = version
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}

	return rootCmd
}

func run() int {
	ctx := context.Background()
	cfg := config.DefaultConfig()
	if cfg.Exist() {
		if err := cfg.Parse(); err != nil {
			log.Error("parse config", "err", err)
			return 1
		}
	} else if err := cfg.ParseEnv(); err != nil {
		log.Error("parse environment", "err", err)
		return 1
	}

	ctx = config.WithContext(ctx, cfg)
	logger, f, err := logr.NewLogger(cfg)
	if err != nil {
		log.Error("create logger", "err", err)
		return 1
	}
	if f != nil {
		defer f.Close() // nolint: errcheck
	}

	// Set global logger
	log.SetDefault(logger)
	ctx = log.WithContext(ctx, logger)

	var opts []maxprocs.Option
	if config.IsVerbose() {
		opts = append(opts, maxprocs.Logger(log.Debugf))
	}
	// Set the max number of processes to the number of CPUs
	// This is useful when running in a container
	if _, err := maxprocs.Set(opts...); err != nil {
		log.Warn("couldn't set automaxprocs", "error", err)
	}

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}

func main() {
	os.Exit(run())
}
