// Package inventory lists the server bundles already present in a download
// directory.
package inventory

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/vscode-server-fetcher/pkg/download"
)

type Entry struct {
	Version  string `json:"version" yaml:"version"`
	Commit   string `json:"commit" yaml:"commit"`
	Artifact string `json:"artifact" yaml:"artifact"`
	Size     int64  `json:"size" yaml:"size"`
	Path     string `json:"path" yaml:"path"`
}

// Scan walks dir/{version}/commit:{hash}/{artifact}/stable. Entries that do
// not fit the layout are ignored. A missing dir yields no entries.
func Scan(dir string) ([]Entry, error) {
	versions, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}

	var entries []Entry
	for _, v := range versions {
		if !v.IsDir() {
			continue
		}
		commits, err := os.ReadDir(filepath.Join(dir, v.Name()))
		if err != nil {
			return nil, err
		}
		for _, c := range commits {
			commit, ok := download.ParseCommitDirName(c.Name())
			if !c.IsDir() || !ok {
				log.Debug().Msgf("skipping %s", filepath.Join(dir, v.Name(), c.Name()))
				continue
			}
			found, err := scanCommit(filepath.Join(dir, v.Name(), c.Name()))
			if err != nil {
				return nil, err
			}
			for _, e := range found {
				e.Version = v.Name()
				e.Commit = commit
				entries = append(entries, e)
			}
		}
	}
	return entries, nil
}

func scanCommit(commitDir string) ([]Entry, error) {
	artifacts, err := os.ReadDir(commitDir)
	if err != nil {
		return nil, err
	}
	var entries []Entry
	for _, a := range artifacts {
		if !a.IsDir() {
			continue
		}
		path := filepath.Join(commitDir, a.Name(), "stable")
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		entries = append(entries, Entry{
			Artifact: a.Name(),
			Size:     info.Size(),
			Path:     path,
		})
	}
	return entries, nil
}
