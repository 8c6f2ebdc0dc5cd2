// Package fetch streams a remote resource into a local file.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/vscode-server-fetcher/pkg/errkind"
)

// ChunkSize is the size of each read from the response body.
const ChunkSize = 1024 * 1024

type Fetcher struct {
	client    *http.Client
	chunkSize int
}

// New returns a Fetcher using client, or http.DefaultClient when client is nil.
func New(client *http.Client) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{client: client, chunkSize: ChunkSize}
}

// PartialSuffix marks the file a transfer is streamed into before it is
// renamed onto its destination.
const PartialSuffix = ".partial"

// Fetch writes the body of url to dst+PartialSuffix and renames it onto dst
// once the whole body is on disk, so dst only ever holds a complete
// download. An interrupted transfer leaves the partial file in place.
func (f *Fetcher) Fetch(ctx context.Context, url, dst string) error {
	log.Info().Msgf("downloading %s to: %s", url, dst)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: setting up request for %s: %w", errkind.ErrNetwork, url, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: download %s: %w", errkind.ErrNetwork, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: download %s returned %d", errkind.ErrNetwork, url, resp.StatusCode)
	}

	partial := dst + PartialSuffix
	out, err := os.Create(partial)
	if err != nil {
		return fmt.Errorf("opening %s for writing: %w", partial, err)
	}

	written, err := f.copy(out, resp.Body)
	if cerr := out.Close(); err == nil && cerr != nil {
		return fmt.Errorf("closing %s: %w", partial, cerr)
	}
	if err != nil {
		return fmt.Errorf("download %s: %w", url, err)
	}
	if err := os.Rename(partial, dst); err != nil {
		return fmt.Errorf("rename %s: %w", partial, err)
	}

	log.Info().Int64("bytes", written).Msgf("finished downloading %s", dst)
	return nil
}

func (f *Fetcher) copy(out io.Writer, in io.Reader) (int64, error) {
	var written int64
	buf := make([]byte, f.chunkSize)
	for {
		n, err := in.Read(buf)
		if n > 0 {
			if _, werr := out.Write(buf[:n]); werr != nil {
				return written, werr
			}
			written += int64(n)
		}
		if err == io.EOF {
			return written, nil
		}
		if err != nil {
			return written, fmt.Errorf("%w: %w", errkind.ErrNetwork, err)
		}
	}
}
