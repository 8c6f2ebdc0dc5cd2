package vcs

import "context"

// ObjectRef is the git object a tag reference points at.
type ObjectRef struct {
	Type string
	SHA  string
}

// TagRef is one entry of the forge's refs/tags listing.
type TagRef struct {
	Ref    string
	NodeID string
	URL    string
	Object ObjectRef
}

type RepoClient interface {
	// ListTagRefs returns every refs/tags/* reference of the repository.
	ListTagRefs(ctx context.Context, owner, repo string) ([]TagRef, error)

	// GetTagObject returns the object an annotated tag object points at.
	GetTagObject(ctx context.Context, owner, repo, sha string) (ObjectRef, error)

	// ListReleaseTags returns the tag name of every published release.
	ListReleaseTags(ctx context.Context, owner, repo string) ([]string, error)
}
