package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"familytree/internal/app"
	"familytree/internal/codec"
	"familytree/internal/config"
)

// --- Global Command Variables ---
var (
	configPath string
	seedPath   string
	verbose    bool
	serveAddr  string
	exportFmt  string
	exportOut  string
	initForce  bool

	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "familytree [input-file]",
		Short: "Build a family tree and answer relationship queries",
		Long: `familytree replays ADD_CHILD and GET_RELATIONSHIP commands against a
seeded family and prints one result per command.

Without a subcommand it behaves like "familytree run".`,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		PersistentPreRunE: loadConfig,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runFile(cmd, args)
		},
	}

	runCmd = &cobra.Command{
		Use:   "run <input-file|->",
		Short: "Execute a command file and print the results",
		Args:  cobra.ExactArgs(1),
		RunE:  runFile,
	}

	queryCmd = &cobra.Command{
		Use:     "query <name> <relationship>",
		Short:   "Resolve one relationship against the seed family",
		Aliases: []string{"q"},
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Query(cmd.Context(), cfg, args[0], args[1], cmd.OutOrStdout())
		},
	}

	exportCmd = &cobra.Command{
		Use:   "export",
		Short: "Write the seed family as yaml, json or a sqlite snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Export(cmd.Context(), cfg, exportFmt, exportOut, cmd.OutOrStdout())
		},
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the family over a JSON HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = serveAddr
			}
			return app.Serve(cmd.Context(), cfg)
		},
	}

	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage the familytree config file",
		// Skips loadConfig so a broken file can still be replaced.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	}

	configInitCmd = &cobra.Command{
		Use:   "init",
		Short: "Write a default config file (--config path or the XDG location)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.InitConfig(configPath, initForce, cmd.OutOrStdout())
		},
	}

	watchCmd = &cobra.Command{
		Use:   "watch <input-file>",
		Short: "Rerun a command file whenever it or the seed changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "-" {
				return fmt.Errorf("watch needs a file, not stdin")
			}
			return app.Watch(cmd.Context(), cfg, args[0], cmd.OutOrStdout())
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: search FAMILYTREE_CONFIG, ./familytree.yaml, XDG)")
	rootCmd.PersistentFlags().StringVar(&seedPath, "seed", "", "seed family file (.yaml, .yml or .json); built-in family when empty")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every command")

	serveCmd.Flags().StringVar(&serveAddr, "addr", ":3000", "HTTP listen address")
	exportCmd.Flags().StringVarP(&exportFmt, "format", "f", "yaml", fmt.Sprintf("output format (%s, sqlite)", joinFormats()))
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output path (stdout when empty)")

	configInitCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(runCmd, queryCmd, exportCmd, serveCmd, watchCmd, configCmd)
}

// loadConfig layers flags over the file and environment config and installs
// a signal-aware context on the command
func loadConfig(cmd *cobra.Command, args []string) error {
	loaded, path, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if seedPath != "" {
		loaded.Seed = seedPath
	}
	if cmd.Flags().Changed("verbose") {
		loaded.Log.Verbose = verbose
	}
	cfg = loaded

	if cfg.Log.Verbose {
		if path != "" {
			log.Printf("Config loaded from %s", path)
		}
		log.Println(cfg.Summary())
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	cobra.OnFinalize(stop)
	cmd.SetContext(ctx)
	return nil
}

func runFile(cmd *cobra.Command, args []string) error {
	input := args[0]
	if input == "-" && isatty.IsTerminal(os.Stdin.Fd()) {
		log.Println("Reading commands from terminal, end with Ctrl-D")
	}
	return app.Run(cmd.Context(), cfg, input, cmd.InOrStdin(), cmd.OutOrStdout())
}

func joinFormats() string {
	formats := codec.Formats()
	out := formats[0]
	for _, f := range formats[1:] {
		out += ", " + f
	}
	return out
}
