package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/release-tag-action/pkg/actions"
	"github.com/release-tag-action/pkg/config"
	"github.com/release-tag-action/pkg/release"
	"github.com/release-tag-action/pkg/reporter"
	"github.com/release-tag-action/pkg/runner"
	"github.com/release-tag-action/pkg/subscription"
	"github.com/release-tag-action/pkg/vcs"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	buildVersion = "dev"
	buildCommit  = "none"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not load .env: %v\n", err)
	}

	rootCmd := &cobra.Command{
		Use:           "release-tag",
		Short:         "Create an annotated Git tag on a GitHub repository",
		Long:          `Creates an annotated tag object through the GitHub API and points refs/tags/<prefix><version> at it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	rootCmd.Flags().String("github-token", tokenFromEnv(), "GitHub token with contents:write on the target repo")
	rootCmd.Flags().String("version", input("version"), "Version to tag")
	rootCmd.Flags().String("git-tag-prefix", input("git_tag_prefix"), "Prefix prepended to the version")
	rootCmd.Flags().String("git-commit-sha", input("git_commit_sha"), "Commit to tag (defaults to GITHUB_SHA)")
	rootCmd.Flags().String("github-repo", input("github_repo"), "Target repository (owner/repo)")
	rootCmd.Flags().String("config", ".release-tag.yml", "Path to config file")
	rootCmd.Flags().Bool("dry-run", false, "Resolve the tag request without creating anything")
	rootCmd.Flags().String("output", "table", "Output format: json | table")
	rootCmd.Flags().String("log-level", os.Getenv("LOG_LEVEL"), "Log level: debug | info | warn | error")
	rootCmd.Flags().String("subscription-url", "", "Subscription endpoint template")
	_ = rootCmd.Flags().MarkHidden("subscription-url")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		actions.SetFailed(os.Stdout, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load config %s: %w", cfgPath, err)
		}
		cfg = config.Default()
	}
	cfg = config.MergeFlags(cfg, cmd.Flags())

	env := actions.EnvFromOS()
	level := cfg.LogLevel
	if env.Debug {
		level = "debug"
	}
	logger, err := actions.NewLogger(os.Stdout, level)
	if err != nil {
		return err
	}
	defer logger.Sync()
	logger.Debug("release-tag", zap.String("version", buildVersion), zap.String("commit", buildCommit))

	apiURL := ""
	if env.Enterprise() {
		apiURL = env.APIURL
	}
	gh, err := vcs.NewClient(nil, cfg.Token, apiURL)
	if err != nil {
		return err
	}

	r := runner.New(
		subscription.NewChecker(subscription.WithURLTemplate(cfg.SubscriptionURL)),
		release.NewCreator(vcs.NewGitHubClient(gh), logger),
		logger,
		os.Exit,
	)
	res, ok, err := r.Run(cmd.Context(), cfg, env)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	if err := actions.SetOutput(env.OutputFile, "git_tag_name", res.TagName); err != nil {
		return err
	}
	if err := actions.SetOutput(env.OutputFile, "git_commit_sha", res.CommitSHA); err != nil {
		return err
	}
	return reporter.New(cfg.Output, cmd.OutOrStdout()).Report(res)
}

// input reads a step input the way the runner exposes it: INPUT_<NAME>.
func input(name string) string {
	return strings.TrimSpace(os.Getenv("INPUT_" + strings.ToUpper(name)))
}

func tokenFromEnv() string {
	if v := input("github_token"); v != "" {
		return v
	}
	return os.Getenv("GITHUB_TOKEN")
}
