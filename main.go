package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/briangreenhill/govtrack/internal/config"
	"github.com/briangreenhill/govtrack/internal/queries"
)

const version = "v0.1.0"

func main() {
	_ = godotenv.Load()
	if err := runCLI(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// cliFlags override the environment configuration for one invocation
type cliFlags struct {
	offline   bool
	cacheFile string
	record    bool
	policy    string
	save      string
	asJSON    bool
	verbose   bool
}

func runCLI(args []string, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	root := newRootCmd(cfg, stdout, stderr)
	root.SetArgs(args)
	return root.Execute()
}

func newRootCmd(cfg *config.Config, stdout, stderr io.Writer) *cobra.Command {
	flags := &cliFlags{
		offline:   cfg.Cache.Offline,
		cacheFile: cfg.Cache.File,
		record:    cfg.Cache.Record,
		policy:    cfg.Cache.RecordPolicy,
	}

	root := &cobra.Command{
		Use:           "govtrack",
		Short:         "Query the GovTrack API, live or from a recorded cache",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.BoolVar(&flags.offline, "offline", flags.offline, "replay responses from the cache file instead of the network")
	pf.StringVar(&flags.cacheFile, "cache-file", flags.cacheFile, "cache file to load when offline")
	pf.BoolVar(&flags.record, "record", flags.record, "record live responses into the cache")
	pf.StringVar(&flags.policy, "policy", flags.policy, "replay policy for recorded entries (repeat or empty)")
	pf.StringVar(&flags.save, "save", "", "write the cache here after the query (defaults to --cache-file when recording)")
	pf.BoolVar(&flags.asJSON, "json", false, "print JSON instead of a markdown table")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "debug logging")

	commands := []struct{ name, use string }{
		{"senators", "senators PARTY"},
		{"representatives", "representatives PARTY"},
		{"bills", "bills KEYWORD"},
	}
	for _, c := range commands {
		name := c.name
		root.AddCommand(&cobra.Command{
			Use:   c.use,
			Short: "List " + name,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runQuery(cmd.Context(), cfg, flags, cmd.OutOrStdout(), stderr, name, args[0])
			},
		})
	}

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "govtrack %s\n", version)
		},
	})

	return root
}

// runQuery builds a client from cfg and flags, runs the named query and
// prints the result.
func runQuery(ctx context.Context, cfg *config.Config, flags *cliFlags, stdout, stderr io.Writer, name, arg string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	c := *cfg
	c.Cache.Offline = flags.offline
	c.Cache.File = flags.cacheFile
	c.Cache.Record = flags.record
	c.Cache.RecordPolicy = flags.policy
	if err := c.Validate(); err != nil {
		return err
	}

	level := c.Level()
	if flags.verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: stderr}).Level(level).With().Timestamp().Logger()

	client, err := c.NewClient(logger)
	if err != nil {
		return err
	}

	q, ok := queries.ForClient(client).Get(name)
	if !ok {
		return fmt.Errorf("unknown query: %s", name)
	}
	res, err := q.Run(ctx, arg)
	if err != nil {
		return fmt.Errorf("failed to get %s: %w", name, err)
	}

	savePath := flags.save
	if savePath == "" && c.Cache.Record {
		savePath = c.Cache.File
	}
	if savePath != "" {
		if err := client.SaveCache(savePath); err != nil {
			return err
		}
	}

	if flags.asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	_, err = fmt.Fprint(stdout, res.Markdown())
	return err
}
