package reporter

import (
	"io"

	"github.com/release-tag-action/pkg/runner"
)

type Reporter interface {
	Report(res runner.Result) error
}

func New(format string, w io.Writer) Reporter {
	switch format {
	case "json":
		return &JSONReporter{w: w}
	default:
		return &TableReporter{w: w}
	}
}
