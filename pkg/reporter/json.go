package reporter

import (
	"encoding/json"
	"io"

	"github.com/release-tag-action/pkg/runner"
)

type JSONReporter struct {
	w io.Writer
}

func (r *JSONReporter) Report(res runner.Result) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
