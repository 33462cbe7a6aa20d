package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/release-tag-action/pkg/release"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// ErrMissingInput is returned by Validate when a required input is empty.
var ErrMissingInput = errors.New("input required and not supplied")

type Config struct {
	TagPrefix       string `yaml:"git_tag_prefix"`
	MessageTemplate string `yaml:"message_template"`
	Tagger          Tagger `yaml:"tagger"`
	LogLevel        string `yaml:"log_level"`
	Version         string `yaml:"-"`
	CommitSHA       string `yaml:"-"`
	Repo            string `yaml:"-"`
	Token           string `yaml:"-"`
	DryRun          bool   `yaml:"-"`
	Output          string `yaml:"-"`
	SubscriptionURL string `yaml:"-"`
}

// Tagger overrides the identity recorded on the annotated tag. Empty fields
// fall back to the triggering actor.
type Tagger struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

func Default() *Config {
	return &Config{
		MessageTemplate: release.DefaultMessageTemplate,
		LogLevel:        "info",
		Output:          "table",
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.MessageTemplate == "" {
		cfg.MessageTemplate = release.DefaultMessageTemplate
	}
	return cfg, nil
}

// LoadDotEnv reads a .env file into the process environment for local runs.
// Variables already set win. Inside GitHub Actions the file is ignored.
func LoadDotEnv(path string) error {
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	return godotenv.Load(path)
}

func MergeFlags(cfg *Config, flags *pflag.FlagSet) *Config {
	if v, err := flags.GetString("github-token"); err == nil && v != "" {
		cfg.Token = v
	}
	if v, err := flags.GetString("version"); err == nil && v != "" {
		cfg.Version = v
	}
	if v, err := flags.GetString("git-tag-prefix"); err == nil && v != "" {
		cfg.TagPrefix = v
	}
	if v, err := flags.GetString("git-commit-sha"); err == nil && v != "" {
		cfg.CommitSHA = v
	}
	if v, err := flags.GetString("github-repo"); err == nil && v != "" {
		cfg.Repo = v
	}
	if v, err := flags.GetBool("dry-run"); err == nil {
		cfg.DryRun = v
	}
	if v, err := flags.GetString("output"); err == nil && v != "" {
		cfg.Output = v
	}
	if v, err := flags.GetString("log-level"); err == nil && v != "" {
		cfg.LogLevel = v
	}
	if v, err := flags.GetString("subscription-url"); err == nil && v != "" {
		cfg.SubscriptionURL = v
	}
	return cfg
}

// Validate checks the required inputs in the order the action declares them.
// git_commit_sha is required but may be empty, so it is not checked here.
func (c *Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"github_token", c.Token},
		{"version", c.Version},
		{"github_repo", c.Repo},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%w: %s", ErrMissingInput, r.name)
		}
	}
	return nil
}
