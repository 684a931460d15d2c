// Package config reads openpr preferences from the repository's git config.
//
// Recognized keys, all under the "openpr" section:
//
//	openpr.remote  remote used to resolve the GitHub repository (default "origin")
//	openpr.base    preselected target branch for new pull requests
//	openpr.draft   create pull requests as drafts ("true"/"false")
package config

import (
	"strings"

	"openpr.dev/openpr/internal/git"
)

const section = "openpr"

// DefaultRemote is used when openpr.remote is unset
const DefaultRemote = "origin"

// Config holds the per-repository preferences
type Config struct {
	Remote string
	Base   string
	Draft  bool
}

// Load reads preferences from the repository's git config.
// Unset keys fall back to defaults; Load never fails on missing keys.
func Load(repo *git.LocalRepository) (*Config, error) {
	cfg := &Config{Remote: DefaultRemote}

	remote, err := repo.ConfigValue(section, "remote")
	if err != nil {
		return nil, err
	}
	if remote != "" {
		cfg.Remote = remote
	}

	base, err := repo.ConfigValue(section, "base")
	if err != nil {
		return nil, err
	}
	cfg.Base = base

	draft, err := repo.ConfigValue(section, "draft")
	if err != nil {
		return nil, err
	}
	cfg.Draft = strings.EqualFold(draft, "true") || draft == "1"

	return cfg, nil
}
