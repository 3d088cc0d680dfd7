package output

import (
	"context"
	"strings"

	"github.com/crimson-sun/verdict/internal/model"
)

// Output defines the interface for report destinations.
type Output interface {
	Write(ctx context.Context, report model.Report) error
	Close() error
}

// Detail selects how much attribution data an output emits.
type Detail int

const (
	Top  Detail = iota // ranked top-N entries only
	Full               // every computed delta
)

// ParseDetail maps a string to a Detail level. Unknown strings fall back to
// Top.
func ParseDetail(s string) Detail {
	if strings.EqualFold(s, "full") {
		return Full
	}
	return Top
}

// FormatReport returns a copy of the report shaped for the given detail
// level. At Full, the complete ranked delta set replaces the top-N view in
// the serialized output.
func FormatReport(r model.Report, detail Detail) model.Report {
	if detail == Full && len(r.AllAttributions) > 0 {
		r.TopTokenImportances = r.AllAttributions
	}
	return r
}
