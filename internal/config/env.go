package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/nguyentantai21042004/lecture-digest/internal/apperr"
)

// LoadEnvFiles loads KEY=value files into the process environment. Files that
// do not exist are skipped; variables already set are not overridden.
func LoadEnvFiles(paths ...string) error {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return apperr.Configuration("load env file "+p, err)
		}
	}
	return nil
}

// ResolveCredentials reads the API keys the selected backends need. A missing
// key is a configuration error so the run fails before any work begins.
func (c *Config) ResolveCredentials(lookup func(string) (string, bool)) error {
	return c.resolve(lookup, c.NeedsOpenAI(), c.NeedsGemini())
}

// ResolveSummarizerCredentials is ResolveCredentials for runs that only
// summarize existing transcripts.
func (c *Config) ResolveSummarizerCredentials(lookup func(string) (string, bool)) error {
	return c.resolve(lookup, c.Summarization.Provider == ProviderOpenAI, c.NeedsGemini())
}

func (c *Config) resolve(lookup func(string) (string, bool), needOpenAI, needGemini bool) error {
	if needOpenAI {
		key, ok := lookup(c.OpenAI.APIKeyEnv)
		if !ok || key == "" {
			return apperr.Configuration("resolve credentials", fmt.Errorf("environment variable %s is not set", c.OpenAI.APIKeyEnv))
		}
		c.OpenAI.APIKey = key
	}
	if needGemini {
		key, ok := lookup(c.Gemini.APIKeyEnv)
		if !ok || key == "" {
			return apperr.Configuration("resolve credentials", fmt.Errorf("environment variable %s is not set", c.Gemini.APIKeyEnv))
		}
		c.Gemini.APIKey = key
	}
	return nil
}
