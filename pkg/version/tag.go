package version

import (
	"path"

	"github.com/vscode-server-fetcher/pkg/vcs"
)

// Kind is the type of git object a tag reference points at.
type Kind int

const (
	KindUnknown Kind = iota
	KindCommit
	KindTag
)

func (k Kind) String() string {
	switch k {
	case KindCommit:
		return "commit"
	case KindTag:
		return "tag"
	default:
		return "unknown"
	}
}

// Target is either a commit or an annotated tag object, identified by SHA.
// Raw keeps the forge's type string so unknown kinds can be reported.
type Target struct {
	Kind Kind
	SHA  string
	Raw  string
}

func CommitTarget(sha string) Target { return Target{Kind: KindCommit, SHA: sha, Raw: "commit"} }

func TagTarget(sha string) Target { return Target{Kind: KindTag, SHA: sha, Raw: "tag"} }

func parseTarget(obj vcs.ObjectRef) Target {
	switch obj.Type {
	case "commit":
		return CommitTarget(obj.SHA)
	case "tag":
		return TagTarget(obj.SHA)
	default:
		return Target{Kind: KindUnknown, SHA: obj.SHA, Raw: obj.Type}
	}
}

type TagReference struct {
	Ref    string
	NodeID string
	URL    string
	Target Target
}

// Version is the last path segment of the ref name, e.g. "1.85.0" for
// "refs/tags/1.85.0".
func (t TagReference) Version() string {
	return path.Base(t.Ref)
}

func fromVCS(r vcs.TagRef) TagReference {
	return TagReference{
		Ref:    r.Ref,
		NodeID: r.NodeID,
		URL:    r.URL,
		Target: parseTarget(r.Object),
	}
}
