// Package actions adapts the GitHub Actions runner: its environment, its
// workflow-command log protocol and the step output file.
package actions

import (
	"net/url"
	"os"
)

const defaultHost = "github.com"

// Env is a snapshot of the variables the runner sets for every step.
type Env struct {
	Repository string // GITHUB_REPOSITORY, owner/repo of the invoking workflow
	Actor      string // GITHUB_ACTOR
	SHA        string // GITHUB_SHA, commit of the triggering event
	ServerURL  string // GITHUB_SERVER_URL
	APIURL     string // GITHUB_API_URL
	OutputFile string // GITHUB_OUTPUT
	Debug      bool   // RUNNER_DEBUG=1
}

func EnvFromOS() Env {
	return EnvFromLookup(os.Getenv)
}

func EnvFromLookup(getenv func(string) string) Env {
	return Env{
		Repository: getenv("GITHUB_REPOSITORY"),
		Actor:      getenv("GITHUB_ACTOR"),
		SHA:        getenv("GITHUB_SHA"),
		ServerURL:  getenv("GITHUB_SERVER_URL"),
		APIURL:     getenv("GITHUB_API_URL"),
		OutputFile: getenv("GITHUB_OUTPUT"),
		Debug:      getenv("RUNNER_DEBUG") == "1",
	}
}

// ProviderHost returns the host of the GitHub server, used for noreply
// addresses. Unparseable or empty server URLs fall back to github.com.
func (e Env) ProviderHost() string {
	if e.ServerURL == "" {
		return defaultHost
	}
	u, err := url.Parse(e.ServerURL)
	if err != nil || u.Hostname() == "" {
		return defaultHost
	}
	return u.Hostname()
}

// Enterprise reports whether the API URL points somewhere other than
// api.github.com.
func (e Env) Enterprise() bool {
	if e.APIURL == "" {
		return false
	}
	u, err := url.Parse(e.APIURL)
	if err != nil {
		return false
	}
	return u.Hostname() != "api.github.com"
}
