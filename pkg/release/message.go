package release

import (
	"bytes"
	"fmt"
	"text/template"
)

const DefaultMessageTemplate = "chore(release): {{ .TagName }}"

// MessageData is the data available to the tag message template.
type MessageData struct {
	TagName   string
	Version   string
	Prefix    string
	CommitSHA string
	Owner     string
	Repo      string
}

func (d MessageData) ShortCommit() string {
	if len(d.CommitSHA) > 7 {
		return d.CommitSHA[:7]
	}
	return d.CommitSHA
}

// RenderMessage executes tmpl against data. An empty template renders the
// conventional release message.
func RenderMessage(tmpl string, data MessageData) (string, error) {
	if tmpl == "" {
		tmpl = DefaultMessageTemplate
	}
	t, err := template.New("message").Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("parse message template: %w", err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render message template: %w", err)
	}
	return buf.String(), nil
}
