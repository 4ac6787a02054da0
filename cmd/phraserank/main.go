// Copyright 2025 The PhraseRank Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the PhraseRank autocomplete binary.

PhraseRank keeps a corpus of phrases with popularity scores in a byte trie
and answers prefix queries with the K best phrases, ranked by score with
lexicographic tie-breaking. It runs as an interactive prompt, a one-shot
query, or a MessagePack IPC server for editors and other tools.

# Usage

Start the interactive prompt over the built-in corpus:

	phraserank

Type a prefix and an optional K (default 5):

	Prefix> how to make 3
	Top 3 suggestions for prefix "how to make":
	  [55] how to make money online
	  [50] how to make pizza
	  [35] how to make pizza dough

Run one query and exit:

	phraserank query -k 3 how to make

Serve msgpack requests on stdin/stdout:

	phraserank serve --seed searches.tsv

# Configuration

A TOML file under the user config dir is created with defaults on first run.
Pass --config to use another file:

	[server]
	max_limit = 64
	default_limit = 5
	max_prefix = 256

	[cli]
	default_limit = 5
	prompt = "Prefix> "

	[corpus]
	builtin = true
	files = ["searches.tsv"]

	[[corpus.seed]]
	phrase = "how to make cold brew"
	score = 12

Seed files are TOML ([[seed]] tables) or text with one "phrase<TAB>score"
record per line; a bare phrase counts as one observation.
*/
package main

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

const (
	Version = "0.1.0"
	AppName = "phraserank"
	gh      = "https://github.com/bastiangx/phraserank"
)

// options collects the persistent flags shared by every subcommand.
type options struct {
	configPath string
	debug      bool
	seedFiles  []string
	noBuiltin  bool
}

func main() {
	if err := run(newRootCmd()); err != nil {
		os.Exit(1)
	}
}

// run executes root and logs any error; cobra's own printing is silenced.
func run(root *cobra.Command) error {
	err := root.Execute()
	if err != nil {
		log.Error(err)
	}
	return err
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           AppName,
		Short:         "Ranked prefix autocomplete over a scored phrase corpus",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(cmd, opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Path to a TOML config file")
	flags.BoolVarP(&opts.debug, "debug", "d", false, "Toggle debug mode")
	flags.StringSliceVar(&opts.seedFiles, "seed", nil, "Extra seed files (.toml, .txt, .tsv)")
	flags.BoolVar(&opts.noBuiltin, "no-builtin", false, "Skip the built-in reference corpus")

	root.AddCommand(
		newReplCmd(opts),
		newQueryCmd(opts),
		newServeCmd(opts),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show current version",
		Run: func(cmd *cobra.Command, args []string) {
			showVersion()
		},
	}
}

// showVersion prints the styled version banner on stderr.
func showVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ PhraseRank ] ranked prefix completions")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}
