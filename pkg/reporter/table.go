package reporter

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/release-tag-action/pkg/runner"
)

type TableReporter struct {
	w io.Writer
}

func (r *TableReporter) Report(res runner.Result) error {
	status := "created"
	if res.DryRun {
		status = "dry-run"
	}

	w := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TAG\tCOMMIT\tREPOSITORY\tSTATUS")
	fmt.Fprintln(w, "---\t------\t----------\t------")
	fmt.Fprintf(w, "%s\t%s\t%s/%s\t%s\n",
		res.TagName,
		shortSHA(res.CommitSHA),
		res.Owner,
		res.Repo,
		status,
	)
	return w.Flush()
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}
