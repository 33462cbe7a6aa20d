package vcs

import (
	"context"
	"time"
)

// Signature identifies who created a tag and when.
type Signature struct {
	Name  string
	Email string
	When  time.Time
}

// TagObject describes an annotated tag to be created against a commit.
type TagObject struct {
	Tag       string
	Message   string
	CommitSHA string
	Tagger    Signature
}

type GitClient interface {
	// CreateTagObject creates an annotated tag object pointing at a commit
	// and returns the SHA of the new tag object.
	CreateTagObject(ctx context.Context, owner, repo string, tag TagObject) (string, error)

	// CreateReference creates ref (e.g. refs/tags/v1.0.0) pointing at sha.
	// It fails if the ref already exists.
	CreateReference(ctx context.Context, owner, repo, ref, sha string) error
}
