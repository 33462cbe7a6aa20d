// Package release assembles an annotated-tag request and creates the tag on
// the remote repository.
package release

import (
	"fmt"
	"time"

	"github.com/release-tag-action/pkg/vcs"
)

// Request is everything needed to create one annotated tag. It is built once
// per run and consumed by Creator.Create.
type Request struct {
	Owner            string
	Repo             string
	GitName          string
	GitEmail         string
	GitTagName       string
	GitCommitSha     string
	GitCommitMessage string
	GitDate          time.Time
}

// Inputs are the step parameters that shape a Request.
type Inputs struct {
	Repository      string // owner/repo
	Version         string
	Prefix          string
	CommitSHA       string
	MessageTemplate string
	TaggerName      string
	TaggerEmail     string
}

// Trigger carries what the host CI environment knows about the event that
// started the run.
type Trigger struct {
	Actor string
	SHA   string
	Host  string // provider host for noreply addresses, e.g. github.com
}

func TagName(prefix, version string) string {
	return prefix + version
}

func NoReplyEmail(name, host string) string {
	return fmt.Sprintf("%s@users.noreply.%s", name, host)
}

// NewRequest resolves inputs against the trigger. An empty commit SHA falls
// back to the triggering commit, and the tagger defaults to the actor.
func NewRequest(in Inputs, trig Trigger, now time.Time) (Request, error) {
	owner, repo, err := vcs.ParseGitHubRepo(in.Repository)
	if err != nil {
		return Request{}, err
	}

	tagName := TagName(in.Prefix, in.Version)
	if err := ValidateTagName(tagName); err != nil {
		return Request{}, err
	}

	commitSHA := in.CommitSHA
	if commitSHA == "" {
		commitSHA = trig.SHA
	}
	if commitSHA == "" {
		return Request{}, fmt.Errorf("no commit to tag: git_commit_sha is empty and the event carries no sha")
	}

	name := in.TaggerName
	if name == "" {
		name = trig.Actor
	}
	email := in.TaggerEmail
	if email == "" {
		email = NoReplyEmail(name, trig.Host)
	}

	message, err := RenderMessage(in.MessageTemplate, MessageData{
		TagName:   tagName,
		Version:   in.Version,
		Prefix:    in.Prefix,
		CommitSHA: commitSHA,
		Owner:     owner,
		Repo:      repo,
	})
	if err != nil {
		return Request{}, err
	}

	return Request{
		Owner:            owner,
		Repo:             repo,
		GitName:          name,
		GitEmail:         email,
		GitTagName:       tagName,
		GitCommitSha:     commitSHA,
		GitCommitMessage: message,
		GitDate:          now.UTC(),
	}, nil
}
