// Package download fetches the server bundles of a resolved release into a
// directory tree of the form
//
//	{directory}/{version}/commit:{hash}/{artifact}/stable
//
// On Windows the colon is replaced by U+F03A, which Windows Explorer and WSL
// display as a colon.
package download

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/vscode-server-fetcher/pkg/platform"
	"github.com/vscode-server-fetcher/pkg/version"
)

const windowsColon = "\uf03a"

// Fetcher writes the body of url to dst.
type Fetcher interface {
	Fetch(ctx context.Context, url, dst string) error
}

type Orchestrator struct {
	resolver  *version.Resolver
	fetcher   Fetcher
	platforms platform.Set
	updateURL string
	goos      string
}

func New(resolver *version.Resolver, fetcher Fetcher, platforms platform.Set, updateURL string) *Orchestrator {
	return &Orchestrator{
		resolver:  resolver,
		fetcher:   fetcher,
		platforms: platforms,
		updateURL: strings.TrimSuffix(updateURL, "/"),
		goos:      runtime.GOOS,
	}
}

// CommitDirName is the directory holding the bundles of one commit.
func CommitDirName(commit, goos string) string {
	if goos == "windows" {
		return "commit" + windowsColon + commit
	}
	return "commit:" + commit
}

// ParseCommitDirName is the inverse of CommitDirName for either colon form.
func ParseCommitDirName(name string) (commit string, ok bool) {
	for _, prefix := range []string{"commit:", "commit" + windowsColon} {
		if c, found := strings.CutPrefix(name, prefix); found && c != "" {
			return c, true
		}
	}
	return "", false
}

// Destination is where the bundle of artifact for commit is stored.
func Destination(dir, ver, commit string, artifact platform.Artifact, goos string) string {
	return filepath.Join(dir, ver, CommitDirName(commit, goos), string(artifact), "stable")
}

// ArtifactURL is the update-host URL of a platform bundle built from commit.
func ArtifactURL(updateURL, commit string, artifact platform.Artifact) string {
	return fmt.Sprintf("%s/commit:%s/%s/stable", strings.TrimSuffix(updateURL, "/"), commit, artifact)
}

// Download fetches the bundles of ver for plat (a platform name or
// platform.All) into dir. Bundles already on disk are skipped. The fetches
// run concurrently; once all of them have settled the first failure is
// returned and finished siblings are left in place.
func (o *Orchestrator) Download(ctx context.Context, ver, plat, dir string) error {
	versions, err := o.resolver.VersionMap(ctx)
	if err != nil {
		return err
	}
	ref, err := versions.Lookup(ver)
	if err != nil {
		return err
	}
	artifacts, err := o.platforms.Artifacts(plat)
	if err != nil {
		return err
	}
	commit, err := o.resolver.ResolveCommit(ctx, ref)
	if err != nil {
		return err
	}

	effective := ver
	if ver == version.Latest {
		effective = ref.Version()
		log.Info().Msgf("%s resolves to %s", version.Latest, effective)
	}

	type job struct {
		url string
		dst string
	}
	var jobs []job
	for _, artifact := range artifacts {
		dst := Destination(dir, effective, commit, artifact, o.goos)
		if _, err := os.Stat(dst); err == nil {
			log.Info().Msgf("already downloaded: %s", dst)
			continue
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("stat %s: %w", dst, err)
		}
		jobs = append(jobs, job{url: ArtifactURL(o.updateURL, commit, artifact), dst: dst})
	}

	var g errgroup.Group
	for _, j := range jobs {
		j := j
		g.Go(func() error {
			if err := os.MkdirAll(filepath.Dir(j.dst), 0o755); err != nil {
				return fmt.Errorf("create %s: %w", filepath.Dir(j.dst), err)
			}
			return o.fetcher.Fetch(ctx, j.url, j.dst)
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("download %s (%s): %w", effective, plat, err)
	}
	return nil
}

// DownloadLast downloads the n greatest concrete versions one after another,
// stopping at the first failure.
func (o *Orchestrator) DownloadLast(ctx context.Context, n int, plat, dir string) error {
	if n < 1 {
		return fmt.Errorf("last must be at least 1, got %d", n)
	}
	versions, err := o.resolver.VersionMap(ctx)
	if err != nil {
		return err
	}
	for _, v := range versions.Newest(n) {
		if err := o.Download(ctx, v, plat, dir); err != nil {
			return err
		}
	}
	return nil
}
