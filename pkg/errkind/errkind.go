// Package errkind holds the sentinel errors shared by the fetcher, the
// resolver and the orchestrator. Callers match them with errors.Is.
package errkind

import "errors"

var (
	// ErrNetwork covers transport failures and non-2xx HTTP responses.
	ErrNetwork = errors.New("network error")
	// ErrParse covers malformed JSON or a response that does not match the expected schema.
	ErrParse = errors.New("parse error")
	// ErrResolution is returned when a tag cannot be resolved down to a commit.
	ErrResolution = errors.New("resolution error")
	// ErrUnknownVersion is returned for a version absent from the version map.
	ErrUnknownVersion = errors.New("unknown version")
	// ErrEmptyVersionSet is returned when no tag matches an official release.
	ErrEmptyVersionSet = errors.New("no official release matches any tag")
)
