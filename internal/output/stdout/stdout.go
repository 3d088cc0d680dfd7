package stdout

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/crimson-sun/verdict/internal/model"
	"github.com/crimson-sun/verdict/internal/output"
)

// Output writes JSON-encoded reports to stdout, one per line (NDJSON) or
// pretty-printed.
type Output struct {
	enc    *json.Encoder
	detail output.Detail
}

// New creates a stdout Output with the given detail level and optional
// pretty-printed JSON.
func New(detail output.Detail, pretty bool) *Output {
	enc := json.NewEncoder(os.Stdout)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return &Output{enc: enc, detail: detail}
}

func (o *Output) Write(_ context.Context, report model.Report) error {
	formatted := output.FormatReport(report, o.detail)
	if err := o.enc.Encode(formatted); err != nil {
		return fmt.Errorf("stdout output: %w", err)
	}
	return nil
}

func (o *Output) Close() error {
	return nil
}
