package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/bastiangx/phraserank/internal/cli"
	"github.com/bastiangx/phraserank/internal/logger"
	"github.com/bastiangx/phraserank/pkg/config"
	"github.com/bastiangx/phraserank/pkg/corpus"
	"github.com/bastiangx/phraserank/pkg/index"
	"github.com/bastiangx/phraserank/pkg/server"
	"github.com/bastiangx/phraserank/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func newReplCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive prompt: type a prefix and an optional k",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(cmd, opts)
		},
	}
}

func newQueryCmd(opts *options) *cobra.Command {
	var k int
	cmd := &cobra.Command{
		Use:   "query <prefix...>",
		Short: "Print the top k completions for a prefix and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, completer, err := bootstrap(opts)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("limit") {
				k = cfg.CLI.DefaultLimit
			}
			if k < 0 {
				return fmt.Errorf("%w: %d", cli.ErrInvalidLimit, k)
			}
			prefix := strings.Join(args, " ")
			cli.PrintSuggestions(cmd.OutOrStdout(), prefix, completer.Complete(prefix, k))
			return nil
		},
	}
	cmd.Flags().IntVarP(&k, "limit", "k", 5, "Number of suggestions to return")
	return cmd
}

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve msgpack completion requests on stdin/stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, completer, err := bootstrap(opts)
			if err != nil {
				return err
			}
			log.Debug("spawning IPC")
			srv := server.NewServer(completer, cfg, cmd.InOrStdin(), cmd.OutOrStdout())
			if err := srv.Start(); err != nil {
				log.Errorf("Server stopped: %v", err)
				return err
			}
			return nil
		},
	}
}

func runRepl(cmd *cobra.Command, opts *options) error {
	cfg, completer, err := bootstrap(opts)
	if err != nil {
		return err
	}
	h := cli.NewInputHandler(completer, cmd.InOrStdin(), cmd.OutOrStdout(), cfg.CLI.Prompt, cfg.CLI.DefaultLimit)
	if err := h.Start(); err != nil {
		log.Errorf("CLI error: %v", err)
		return err
	}
	return nil
}

// bootstrap sets the log level, loads config and seeds a new completer from
// the built-in corpus, inline config seeds and seed files, in that order.
func bootstrap(opts *options) (*config.Config, *suggest.Completer, error) {
	logger.SetDebug(opts.debug)

	cfg, configPath, err := config.LoadConfigWithPriority(opts.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	log.Debugf("Using config: %s", config.GetActiveConfigPath(configPath))

	trie := index.New()
	applied := 0
	if cfg.Corpus.Builtin && !opts.noBuiltin {
		applied += corpus.Apply(trie, corpus.Defaults())
	}
	applied += corpus.Apply(trie, cfg.Corpus.Seeds)

	files := append(append([]string{}, cfg.Corpus.Files...), opts.seedFiles...)
	seeds, err := corpus.LoadFiles(files)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load seeds: %w", err)
	}
	applied += corpus.Apply(trie, seeds)
	completer := suggest.NewCompleterFromTrie(trie)

	log.Debug("Completer init done", "seeds", applied, "phrases", completer.Len(), "pid", os.Getpid())
	return cfg, completer, nil
}
