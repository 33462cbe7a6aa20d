package vcs

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v60/github"
)

const objectTypeCommit = "commit"

type GitHubClient struct {
	client *github.Client
}

func NewGitHubClient(client *github.Client) *GitHubClient {
	return &GitHubClient{client: client}
}

// NewClient builds an authenticated go-github client. A non-empty apiURL
// selects GitHub Enterprise endpoints.
func NewClient(httpClient *http.Client, token, apiURL string) (*github.Client, error) {
	client := github.NewClient(httpClient).WithAuthToken(token)
	if apiURL == "" {
		return client, nil
	}
	client, err := client.WithEnterpriseURLs(apiURL, apiURL)
	if err != nil {
		return nil, fmt.Errorf("configure enterprise url %s: %w", apiURL, err)
	}
	return client, nil
}

// CreateTagObject and CreateReference return go-github errors unwrapped so
// callers surface the provider message as is.
func (g *GitHubClient) CreateTagObject(ctx context.Context, owner, repo string, tag TagObject) (string, error) {
	created, _, err := g.client.Git.CreateTag(ctx, owner, repo, &github.Tag{
		Tag:     github.String(tag.Tag),
		Message: github.String(tag.Message),
		Object: &github.GitObject{
			Type: github.String(objectTypeCommit),
			SHA:  github.String(tag.CommitSHA),
		},
		Tagger: &github.CommitAuthor{
			Name:  github.String(tag.Tagger.Name),
			Email: github.String(tag.Tagger.Email),
			Date:  &github.Timestamp{Time: tag.Tagger.When},
		},
	})
	if err != nil {
		return "", err
	}
	if created.GetSHA() == "" {
		return "", fmt.Errorf("tag %s in %s/%s: response carried no sha", tag.Tag, owner, repo)
	}
	return created.GetSHA(), nil
}

func (g *GitHubClient) CreateReference(ctx context.Context, owner, repo, ref, sha string) error {
	_, _, err := g.client.Git.CreateRef(ctx, owner, repo, &github.Reference{
		Ref:    github.String(ref),
		Object: &github.GitObject{SHA: github.String(sha)},
	})
	return err
}

// ParseGitHubRepo splits an owner/repo identifier. Full GitHub URLs are
// accepted too; anything with more than two path segments is not.
func ParseGitHubRepo(repoURL string) (owner, repo string, err error) {
	repoURL = strings.TrimSpace(repoURL)
	repoURL = strings.TrimPrefix(repoURL, "https://")
	repoURL = strings.TrimPrefix(repoURL, "http://")
	repoURL = strings.TrimPrefix(repoURL, "github.com/")
	repoURL = strings.TrimSuffix(repoURL, ".git")
	repoURL = strings.TrimSuffix(repoURL, "/")

	parts := strings.Split(repoURL, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("cannot parse GitHub repo from %q", repoURL)
	}
	return parts[0], parts[1], nil
}
