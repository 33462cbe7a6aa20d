package actions

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
)

// SetOutput appends name=value to the step output file using the heredoc
// form, so values may span lines. An empty path is a no-op for local runs.
func SetOutput(path, name, value string) error {
	if path == "" {
		return nil
	}
	delimiter := "ghadelimiter_" + uuid.NewString()
	if strings.Contains(name, delimiter) || strings.Contains(value, delimiter) {
		return fmt.Errorf("output %s: value contains delimiter %s", name, delimiter)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open output file: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%s<<%s\n%s\n%s\n", name, delimiter, value, delimiter); err != nil {
		return fmt.Errorf("write output %s: %w", name, err)
	}
	return nil
}
