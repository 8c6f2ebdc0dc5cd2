// Package vcstest provides an in-memory vcs.RepoClient for tests.
package vcstest

import (
	"context"
	"fmt"
	"sync"

	"github.com/vscode-server-fetcher/pkg/errkind"
	"github.com/vscode-server-fetcher/pkg/vcs"
)

// Client serves canned tag refs, tag objects and releases and counts calls.
type Client struct {
	TagRefs  []vcs.TagRef
	Tags     map[string]vcs.ObjectRef
	Releases []string

	TagRefsErr  error
	ReleasesErr error

	mu    sync.Mutex
	calls map[string]int
}

func (c *Client) record(method string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.calls == nil {
		c.calls = make(map[string]int)
	}
	c.calls[method]++
}

// Calls returns how many times method was invoked.
func (c *Client) Calls(method string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[method]
}

func (c *Client) ListTagRefs(ctx context.Context, owner, repo string) ([]vcs.TagRef, error) {
	c.record("ListTagRefs")
	if c.TagRefsErr != nil {
		return nil, c.TagRefsErr
	}
	return c.TagRefs, nil
}

func (c *Client) GetTagObject(ctx context.Context, owner, repo, sha string) (vcs.ObjectRef, error) {
	c.record("GetTagObject")
	obj, ok := c.Tags[sha]
	if !ok {
		return vcs.ObjectRef{}, fmt.Errorf("%w: tag %s: 404 Not Found", errkind.ErrNetwork, sha)
	}
	return obj, nil
}

func (c *Client) ListReleaseTags(ctx context.Context, owner, repo string) ([]string, error) {
	c.record("ListReleaseTags")
	if c.ReleasesErr != nil {
		return nil, c.ReleasesErr
	}
	return c.Releases, nil
}

// CommitRef is a refs/tags/<version> ref pointing straight at a commit.
func CommitRef(version, sha string) vcs.TagRef {
	return vcs.TagRef{Ref: "refs/tags/" + version, Object: vcs.ObjectRef{Type: "commit", SHA: sha}}
}

// AnnotatedRef is a refs/tags/<version> ref pointing at a tag object.
func AnnotatedRef(version, sha string) vcs.TagRef {
	return vcs.TagRef{Ref: "refs/tags/" + version, Object: vcs.ObjectRef{Type: "tag", SHA: sha}}
}
