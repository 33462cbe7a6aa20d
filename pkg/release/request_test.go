package release

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testNow     = time.Date(2026, 10, 19, 9, 30, 0, 0, time.FixedZone("CEST", 2*60*60))
	testTrigger = Trigger{Actor: "octocat", SHA: "eventsha2f1c", Host: "github.com"}
)

func TestTagName(t *testing.T) {
	assert.Equal(t, "v1.2.3", TagName("v", "1.2.3"))
	assert.Equal(t, "2.0.0", TagName("", "2.0.0"))
}

func TestNewRequest(t *testing.T) {
	req, err := NewRequest(Inputs{
		Repository: "acme/widgets",
		Version:    "2.0.0",
		CommitSHA:  "abc123",
	}, testTrigger, testNow)
	require.NoError(t, err)

	want := Request{
		Owner:            "acme",
		Repo:             "widgets",
		GitName:          "octocat",
		GitEmail:         "octocat@users.noreply.github.com",
		GitTagName:       "2.0.0",
		GitCommitSha:     "abc123",
		GitCommitMessage: "chore(release): 2.0.0",
		GitDate:          testNow.UTC(),
	}
	if diff := cmp.Diff(want, req); diff != "" {
		t.Errorf("NewRequest mismatch (-want +got):\n%s", diff)
	}
}

func TestNewRequestPrefix(t *testing.T) {
	req, err := NewRequest(Inputs{
		Repository: "acme/widgets",
		Version:    "1.2.3",
		Prefix:     "v",
		CommitSHA:  "abc123",
	}, testTrigger, testNow)
	require.NoError(t, err)
	assert.Equal(t, "v1.2.3", req.GitTagName)
	assert.Equal(t, "chore(release): v1.2.3", req.GitCommitMessage)
}

func TestNewRequestFallsBackToEventSHA(t *testing.T) {
	req, err := NewRequest(Inputs{
		Repository: "acme/widgets",
		Version:    "1.0.0",
	}, testTrigger, testNow)
	require.NoError(t, err)
	assert.Equal(t, "eventsha2f1c", req.GitCommitSha)
}

func TestNewRequestWithoutAnyCommit(t *testing.T) {
	_, err := NewRequest(Inputs{
		Repository: "acme/widgets",
		Version:    "1.0.0",
	}, Trigger{Actor: "octocat", Host: "github.com"}, testNow)
	assert.ErrorContains(t, err, "no commit to tag")
}

func TestNewRequestTaggerOverrides(t *testing.T) {
	req, err := NewRequest(Inputs{
		Repository: "acme/widgets",
		Version:    "1.0.0",
		CommitSHA:  "abc123",
		TaggerName: "release-bot",
	}, Trigger{Actor: "octocat", Host: "ghe.example.com"}, testNow)
	require.NoError(t, err)
	assert.Equal(t, "release-bot", req.GitName)
	assert.Equal(t, "release-bot@users.noreply.ghe.example.com", req.GitEmail)

	req, err = NewRequest(Inputs{
		Repository:  "acme/widgets",
		Version:     "1.0.0",
		CommitSHA:   "abc123",
		TaggerEmail: "releases@example.com",
	}, testTrigger, testNow)
	require.NoError(t, err)
	assert.Equal(t, "octocat", req.GitName)
	assert.Equal(t, "releases@example.com", req.GitEmail)
}

func TestNewRequestInvalidInputs(t *testing.T) {
	tests := []struct {
		name string
		in   Inputs
	}{
		{"bad repository", Inputs{Repository: "widgets", Version: "1.0.0", CommitSHA: "abc"}},
		{"space in tag", Inputs{Repository: "acme/widgets", Version: "1.0 beta", CommitSHA: "abc"}},
		{"double dot", Inputs{Repository: "acme/widgets", Version: "1..0", CommitSHA: "abc"}},
		{"bad template", Inputs{Repository: "acme/widgets", Version: "1.0.0", CommitSHA: "abc", MessageTemplate: "{{ .Nope }}"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRequest(tt.in, testTrigger, testNow)
			assert.Error(t, err)
		})
	}
}

func TestValidateTagName(t *testing.T) {
	valid := []string{"v1.2.3", "2.0.0", "release/2026-10", "v1.0.0-rc.1+build.5"}
	for _, name := range valid {
		assert.NoError(t, ValidateTagName(name), name)
	}

	invalid := []string{"", "has space", "v1..2", "v1.lock", "tag~1", "tag^", "a:b", "x@{y"}
	for _, name := range invalid {
		err := ValidateTagName(name)
		assert.Error(t, err, name)
		assert.True(t, errors.Is(err, ErrInvalidTagName), name)
	}
}

func TestValidateTagNameKeepsCause(t *testing.T) {
	err := ValidateTagName("has space")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), `invalid tag name: "has space": `), err.Error())
	assert.Contains(t, err.Error(), plumbing.ErrInvalidReferenceName.Error())
}

func TestTagRef(t *testing.T) {
	assert.Equal(t, "refs/tags/v1.2.3", TagRef("v1.2.3"))
}

func TestRenderMessage(t *testing.T) {
	data := MessageData{TagName: "v1.2.3", Version: "1.2.3", Prefix: "v", CommitSHA: "abcdef0123456789", Owner: "acme", Repo: "widgets"}

	msg, err := RenderMessage("", data)
	require.NoError(t, err)
	assert.Equal(t, "chore(release): v1.2.3", msg)

	msg, err = RenderMessage("Release {{ .Version }} of {{ .Owner }}/{{ .Repo }} at {{ .ShortCommit }}", data)
	require.NoError(t, err)
	assert.Equal(t, "Release 1.2.3 of acme/widgets at abcdef0", msg)

	_, err = RenderMessage("{{ .TagName", data)
	assert.ErrorContains(t, err, "parse message template")
}
