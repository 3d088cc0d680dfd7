package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/crimson-sun/verdict/internal/engine"
	"github.com/crimson-sun/verdict/internal/output"
	"github.com/crimson-sun/verdict/internal/output/file"
	"github.com/crimson-sun/verdict/internal/output/stdout"
	"github.com/crimson-sun/verdict/internal/pipeline"
)

// sampleReviews are built-in example inputs, selectable via --sample.
var sampleReviews = []string{
	"What a fantastic movie! The story, acting and direction were top notch.",
	"I wasted two hours of my life. The plot was weak and the acting was terrible.",
	"A pleasant surprise - had fun the whole time, would watch again.",
	"Overhyped. It had flashes of good moments but mostly dragged on.",
}

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify [text]",
		Short: "Classify review text and report token attributions",
		Long: `Classify a single review passed as an argument, a built-in sample
review (--sample), or one review per line from stdin (--stdin).`,
		Args: cobra.MaximumNArgs(1),
		RunE: runClassify,
	}

	cmd.Flags().Bool("stdin", false, "read one review per line from stdin")
	cmd.Flags().Int("sample", 0, "classify built-in sample review N (1-based)")
	cmd.Flags().Int("maxlen", 0, "override sequence length")
	cmd.Flags().Float64("threshold", -1, "override decision threshold")
	cmd.Flags().StringP("out", "o", "", "write reports to file (NDJSON) instead of stdout")
	cmd.Flags().Bool("pretty", false, "indent stdout JSON")
	cmd.Flags().String("detail", "top", "attribution detail: top or full")

	return cmd
}

func runClassify(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	maxlen := cfg.Engine.Maxlen
	if v, _ := cmd.Flags().GetInt("maxlen"); v != 0 {
		maxlen = v
	}
	threshold := cfg.Engine.Threshold
	if v, _ := cmd.Flags().GetFloat64("threshold"); v >= 0 {
		threshold = v
	}

	eng, closeEngine, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	defer closeEngine()

	detail := output.ParseDetail(mustString(cmd, "detail"))
	out, err := buildOutput(cmd, detail)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if useStdin, _ := cmd.Flags().GetBool("stdin"); useStdin {
		p := pipeline.New(eng, out, maxlen, threshold)
		defer p.Close()
		return p.Run(ctx, os.Stdin)
	}
	defer out.Close()

	text, err := resolveText(cmd, args)
	if err != nil {
		return err
	}

	report, err := eng.Process(ctx, engine.Request{
		Text:      text,
		Maxlen:    maxlen,
		Threshold: threshold,
	})
	if err != nil {
		return err
	}
	return out.Write(ctx, report)
}

// resolveText picks the input review from the positional argument or the
// --sample flag.
func resolveText(cmd *cobra.Command, args []string) (string, error) {
	sample, _ := cmd.Flags().GetInt("sample")
	if sample > 0 {
		if sample > len(sampleReviews) {
			return "", fmt.Errorf("sample must be in [1,%d]", len(sampleReviews))
		}
		return sampleReviews[sample-1], nil
	}
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return "", fmt.Errorf("provide review text, --sample, or --stdin")
	}
	return args[0], nil
}

func buildOutput(cmd *cobra.Command, detail output.Detail) (output.Output, error) {
	if path := mustString(cmd, "out"); path != "" {
		return file.New(path, detail)
	}
	pretty, _ := cmd.Flags().GetBool("pretty")
	return stdout.New(detail, pretty), nil
}

func mustString(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}
