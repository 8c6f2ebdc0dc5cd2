// Package registry lists the official releases of the project. The list is
// fetched once per Registry and reused for its lifetime.
package registry

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/vscode-server-fetcher/pkg/vcs"
)

type Registry struct {
	client vcs.RepoClient
	owner  string
	repo   string

	mu       sync.Mutex
	releases []string
}

func New(client vcs.RepoClient, owner, repo string) *Registry {
	return &Registry{
		client: client,
		owner:  owner,
		repo:   repo,
	}
}

// OfficialReleases returns the tag name of every published release. Only a
// successful fetch is memoized; a failed one is retried on the next call.
func (r *Registry) OfficialReleases(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.releases != nil {
		log.Debug().Int("count", len(r.releases)).Msg("using cached release list")
		return slices.Clone(r.releases), nil
	}

	tags, err := r.client.ListReleaseTags(ctx, r.owner, r.repo)
	if err != nil {
		return nil, fmt.Errorf("official releases: %w", err)
	}
	if tags == nil {
		tags = []string{}
	}
	log.Debug().Int("count", len(tags)).Msgf("fetched releases of %s/%s", r.owner, r.repo)
	r.releases = tags
	return slices.Clone(tags), nil
}
