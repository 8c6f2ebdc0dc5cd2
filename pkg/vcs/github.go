package vcs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v60/github"
	"github.com/google/go-querystring/query"
	"github.com/vscode-server-fetcher/pkg/errkind"
)

const perPage = 100

type GitHubClient struct {
	client *github.Client
}

func NewGitHubClient(client *github.Client) *GitHubClient {
	return &GitHubClient{client: client}
}

// NewClient builds a go-github client for apiURL. An empty token means
// unauthenticated requests.
func NewClient(httpClient *http.Client, apiURL, token string) (*github.Client, error) {
	client := github.NewClient(httpClient)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	if apiURL != "" {
		u, err := url.Parse(apiURL)
		if err != nil {
			return nil, fmt.Errorf("parse api url %q: %w", apiURL, err)
		}
		if !strings.HasSuffix(u.Path, "/") {
			u.Path += "/"
		}
		client.BaseURL = u
	}
	return client, nil
}

func (g *GitHubClient) ListTagRefs(ctx context.Context, owner, repo string) ([]TagRef, error) {
	var allRefs []TagRef
	opts := &github.ListOptions{PerPage: perPage}

	for {
		u, err := addOptions(fmt.Sprintf("repos/%s/%s/git/refs/tags", owner, repo), opts)
		if err != nil {
			return nil, err
		}
		req, err := g.client.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, fmt.Errorf("build tag refs request: %w", err)
		}

		var refs []*github.Reference
		resp, err := g.client.Do(ctx, req, &refs)
		if err != nil {
			return nil, classify(fmt.Sprintf("list tag refs for %s/%s", owner, repo), err)
		}
		for _, r := range refs {
			allRefs = append(allRefs, TagRef{
				Ref:    r.GetRef(),
				NodeID: r.GetNodeID(),
				URL:    r.GetURL(),
				Object: ObjectRef{
					Type: r.GetObject().GetType(),
					SHA:  r.GetObject().GetSHA(),
				},
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return allRefs, nil
}

func (g *GitHubClient) GetTagObject(ctx context.Context, owner, repo, sha string) (ObjectRef, error) {
	tag, _, err := g.client.Git.GetTag(ctx, owner, repo, sha)
	if err != nil {
		return ObjectRef{}, classify(fmt.Sprintf("get tag %s in %s/%s", sha, owner, repo), err)
	}
	return ObjectRef{
		Type: tag.GetObject().GetType(),
		SHA:  tag.GetObject().GetSHA(),
	}, nil
}

func (g *GitHubClient) ListReleaseTags(ctx context.Context, owner, repo string) ([]string, error) {
	var tags []string
	opts := &github.ListOptions{PerPage: perPage}

	for {
		releases, resp, err := g.client.Repositories.ListReleases(ctx, owner, repo, opts)
		if err != nil {
			return nil, classify(fmt.Sprintf("list releases for %s/%s", owner, repo), err)
		}
		for _, r := range releases {
			tags = append(tags, r.GetTagName())
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return tags, nil
}

// ParseGitHubRepo splits "owner/repo" (optionally given as a github.com URL).
func ParseGitHubRepo(repoURL string) (owner, repo string, err error) {
	repoURL = strings.TrimPrefix(repoURL, "https://")
	repoURL = strings.TrimPrefix(repoURL, "http://")
	repoURL = strings.TrimPrefix(repoURL, "github.com/")
	repoURL = strings.TrimSuffix(repoURL, ".git")
	repoURL = strings.TrimSuffix(repoURL, "/")

	parts := strings.SplitN(repoURL, "/", 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("cannot parse GitHub repo from %q", repoURL)
	}
	return parts[0], parts[1], nil
}

func addOptions(s string, opts *github.ListOptions) (string, error) {
	qs, err := query.Values(opts)
	if err != nil {
		return "", fmt.Errorf("encode list options: %w", err)
	}
	if enc := qs.Encode(); enc != "" {
		s += "?" + enc
	}
	return s, nil
}

// classify tags a go-github error as a parse failure when the body was
// received but is not valid JSON of the expected shape, and as a network
// failure otherwise. A body cut short (io.ErrUnexpectedEOF) is a network
// failure.
func classify(op string, err error) error {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return fmt.Errorf("%w: %s: %w", errkind.ErrParse, op, err)
	}
	return fmt.Errorf("%w: %s: %w", errkind.ErrNetwork, op, err)
}
