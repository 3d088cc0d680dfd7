package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/crimson-sun/verdict/internal/config"
	"github.com/crimson-sun/verdict/internal/engine"
	"github.com/crimson-sun/verdict/internal/engine/attributor"
	"github.com/crimson-sun/verdict/internal/engine/oracle"
	"github.com/crimson-sun/verdict/internal/engine/tokenizer"
	"github.com/crimson-sun/verdict/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "verdict",
		Short: "Sentiment classification with per-token attribution",
		Long: `Verdict classifies review text as Positive or Negative and explains
each decision with leave-one-out token attributions.

Run 'verdict classify "some review text"' for a single review.
Run 'verdict serve' to start the HTTP API.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "config file path")

	rootCmd.AddCommand(
		classifyCmd(),
		serveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("verdict %s\n", version)
			fmt.Printf("  commit: %s\n", commit)
		},
	}
}

// loadConfig reads the effective configuration and initializes logging.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	logging.Init(cfg.Log.Format, logging.ParseLevel(cfg.Log.Level))
	return cfg, nil
}

// buildEngine assembles the tokenizer, ONNX oracle, and attribution engine
// from configuration. The returned close func releases the ONNX session.
func buildEngine(cfg config.Config) (*engine.Engine, func() error, error) {
	vocab, err := tokenizer.Load(cfg.Model.VocabPath)
	if err != nil {
		return nil, nil, err
	}
	tok := tokenizer.NewTokenizer(vocab)

	scorer, err := oracle.NewONNX(cfg.Model.OnnxPath)
	if err != nil {
		return nil, nil, err
	}

	attr := attributor.New(tok, scorer, cfg.Engine.Workers)
	eng := engine.New(tok, attr, engine.Options{
		TopN:          cfg.Engine.TopN,
		DisplayTokens: cfg.Engine.DisplayTokens,
		Timeout:       cfg.Engine.Timeout,
	})
	return eng, scorer.Close, nil
}
