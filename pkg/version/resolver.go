// Package version reconciles the forge's tag references with its release
// listing into a VersionMap and resolves tag references down to commits.
package version

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/vscode-server-fetcher/pkg/errkind"
	"github.com/vscode-server-fetcher/pkg/registry"
	"github.com/vscode-server-fetcher/pkg/vcs"
)

type Resolver struct {
	client   vcs.RepoClient
	releases *registry.Registry
	owner    string
	repo     string

	mu       sync.Mutex
	versions VersionMap
}

func NewResolver(client vcs.RepoClient, releases *registry.Registry, owner, repo string) *Resolver {
	return &Resolver{
		client:   client,
		releases: releases,
		owner:    owner,
		repo:     repo,
	}
}

// VersionMap returns the official versions of the project plus the Latest
// alias. It is computed on first success and cached for the Resolver's life.
func (r *Resolver) VersionMap(ctx context.Context) (VersionMap, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.versions != nil {
		return maps.Clone(r.versions), nil
	}

	tagRefs, err := r.client.ListTagRefs(ctx, r.owner, r.repo)
	if err != nil {
		return nil, fmt.Errorf("version map: %w", err)
	}
	releases, err := r.releases.OfficialReleases(ctx)
	if err != nil {
		return nil, fmt.Errorf("version map: %w", err)
	}

	refs := make([]TagReference, 0, len(tagRefs))
	for _, t := range tagRefs {
		refs = append(refs, fromVCS(t))
	}
	m, err := Build(refs, releases)
	if err != nil {
		return nil, fmt.Errorf("version map: %w", err)
	}
	log.Debug().
		Int("tags", len(tagRefs)).
		Int("versions", len(m)-1).
		Str("latest", m[Latest].Version()).
		Msg("built version map")

	r.versions = m
	return maps.Clone(m), nil
}

// ResolveCommit returns the commit hash ref points at. A ref to an annotated
// tag costs one extra request; any other indirection is ErrResolution.
func (r *Resolver) ResolveCommit(ctx context.Context, ref TagReference) (string, error) {
	switch ref.Target.Kind {
	case KindCommit:
		return ref.Target.SHA, nil
	case KindTag:
		obj, err := r.client.GetTagObject(ctx, r.owner, r.repo, ref.Target.SHA)
		if err != nil {
			return "", fmt.Errorf("resolve %s: %w", ref.Ref, err)
		}
		if obj.Type != "commit" {
			return "", fmt.Errorf("%w: API did not return expected type when resolving tag-to-commit for %s (got %q)",
				errkind.ErrResolution, ref.Ref, obj.Type)
		}
		return obj.SHA, nil
	default:
		return "", fmt.Errorf("%w: unexpected object type %q for %s", errkind.ErrResolution, ref.Target.Raw, ref.Ref)
	}
}
