package release

import (
	"context"
	"fmt"

	"github.com/release-tag-action/pkg/vcs"
	"go.uber.org/zap"
)

type Creator struct {
	client vcs.GitClient
	logger *zap.Logger
}

func NewCreator(client vcs.GitClient, logger *zap.Logger) *Creator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Creator{client: client, logger: logger}
}

// Create makes the annotated tag object first and then points
// refs/tags/<name> at it. If the ref cannot be created the tag object is
// left in place; it is unreachable but harmless.
func (c *Creator) Create(ctx context.Context, req Request) (string, error) {
	tagSHA, err := c.client.CreateTagObject(ctx, req.Owner, req.Repo, vcs.TagObject{
		Tag:       req.GitTagName,
		Message:   req.GitCommitMessage,
		CommitSHA: req.GitCommitSha,
		Tagger: vcs.Signature{
			Name:  req.GitName,
			Email: req.GitEmail,
			When:  req.GitDate,
		},
	})
	if err != nil {
		return "", fmt.Errorf("create tag object %s: %w", req.GitTagName, err)
	}
	c.logger.Debug("tag object created",
		zap.String("tag", req.GitTagName),
		zap.String("object", tagSHA),
		zap.String("commit", req.GitCommitSha),
	)

	ref := TagRef(req.GitTagName)
	if err := c.client.CreateReference(ctx, req.Owner, req.Repo, ref, tagSHA); err != nil {
		c.logger.Warn("tag object left without a ref",
			zap.String("tag", req.GitTagName),
			zap.String("object", tagSHA),
		)
		return "", fmt.Errorf("create ref %s: %w", ref, err)
	}

	c.logger.Info("Tag created",
		zap.String("tag", req.GitTagName),
		zap.String("repo", req.Owner+"/"+req.Repo),
		zap.String("commit", req.GitCommitSha),
	)
	return req.GitTagName, nil
}
