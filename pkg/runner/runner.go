// Package runner wires the subscription gate and the tag creator into one
// step execution.
package runner

import (
	"context"
	"time"

	"github.com/release-tag-action/pkg/actions"
	"github.com/release-tag-action/pkg/config"
	"github.com/release-tag-action/pkg/release"
	"github.com/release-tag-action/pkg/subscription"
	"github.com/release-tag-action/pkg/vcs"
	"go.uber.org/zap"
)

const (
	// ExitRejected is the process status used when the subscription service
	// refuses the repository.
	ExitRejected = 1

	rejectedMessage    = "Subscription is not valid. Reach out to support@stepsecurity.io"
	unreachableMessage = "Timeout or API not reachable. Continuing to next step."
)

type Gate interface {
	Check(ctx context.Context, repository string) (subscription.Status, error)
}

type TagCreator interface {
	Create(ctx context.Context, req release.Request) (string, error)
}

// Result describes a completed run.
type Result struct {
	TagName   string `json:"git_tag_name"`
	CommitSHA string `json:"git_commit_sha"`
	Owner     string `json:"owner"`
	Repo      string `json:"repo"`
	Message   string `json:"message"`
	DryRun    bool   `json:"dry_run"`
}

type Runner struct {
	gate    Gate
	creator TagCreator
	logger  *zap.Logger
	exit    func(int)
	now     func() time.Time
}

type Option func(*Runner)

func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

// New builds a Runner. exit is called on subscription rejection; main passes
// os.Exit.
func New(gate Gate, creator TagCreator, logger *zap.Logger, exit func(int), opts ...Option) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Runner{
		gate:    gate,
		creator: creator,
		logger:  logger,
		exit:    exit,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run validates inputs, passes the subscription gate and creates the tag.
//
// A rejected subscription calls the exit function and returns a zero Result
// with a nil error and ok == false, so nothing after the gate runs even when
// exit does return (as in tests).
func (r *Runner) Run(ctx context.Context, cfg *config.Config, env actions.Env) (res Result, ok bool, err error) {
	if err := validateInputs(cfg); err != nil {
		return Result{}, false, err
	}

	if !r.checkSubscription(ctx, env.Repository) {
		return Result{}, false, nil
	}

	req, err := release.NewRequest(release.Inputs{
		Repository:      cfg.Repo,
		Version:         cfg.Version,
		Prefix:          cfg.TagPrefix,
		CommitSHA:       cfg.CommitSHA,
		MessageTemplate: cfg.MessageTemplate,
		TaggerName:      cfg.Tagger.Name,
		TaggerEmail:     cfg.Tagger.Email,
	}, release.Trigger{
		Actor: env.Actor,
		SHA:   env.SHA,
		Host:  env.ProviderHost(),
	}, r.now())
	if err != nil {
		return Result{}, false, err
	}

	res = Result{
		TagName:   req.GitTagName,
		CommitSHA: req.GitCommitSha,
		Owner:     req.Owner,
		Repo:      req.Repo,
		Message:   req.GitCommitMessage,
		DryRun:    cfg.DryRun,
	}

	if cfg.DryRun {
		r.logger.Info("dry-run: skipping tag creation",
			zap.String("tag", req.GitTagName),
			zap.String("commit", req.GitCommitSha),
			zap.String("tagger", req.GitName+" <"+req.GitEmail+">"),
		)
		return res, true, nil
	}

	name, err := r.creator.Create(ctx, req)
	if err != nil {
		return Result{}, false, err
	}
	res.TagName = name
	return res, true, nil
}

// validateInputs rejects a misconfigured step before any network call: missing
// inputs, a target that is not owner/repo and a tag name git would refuse.
func validateInputs(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if _, _, err := vcs.ParseGitHubRepo(cfg.Repo); err != nil {
		return err
	}
	return release.ValidateTagName(release.TagName(cfg.TagPrefix, cfg.Version))
}

// checkSubscription reports whether execution may continue.
func (r *Runner) checkSubscription(ctx context.Context, repository string) bool {
	status, err := r.gate.Check(ctx, repository)
	switch status {
	case subscription.StatusRejected:
		r.logger.Error(rejectedMessage)
		_ = r.logger.Sync()
		r.exit(ExitRejected)
		return false
	case subscription.StatusValid:
		r.logger.Debug("subscription valid", zap.String("repository", repository))
	default:
		r.logger.Info(unreachableMessage)
		if err != nil {
			r.logger.Debug("subscription check failed", zap.Error(err))
		}
	}
	return true
}
