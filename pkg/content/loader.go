package content

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"
)

// MaxDocuments caps how many files a directory load picks up.
const MaxDocuments = 20

// ErrNoDocuments is returned when a directory holds no markdown files.
var ErrNoDocuments = errors.New("no markdown documents found")

// LoadDir reads every *.md file in dir, sorted by file name. limit caps the
// number of documents (MaxDocuments when limit <= 0). Files are read in
// parallel; the result keeps name order.
func LoadDir(dir string, limit int) ([]*Document, error) {
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current working directory: %w", err)
		}
	}
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("content directory: %w", err)
	}

	paths, err := filepath.Glob(filepath.Join(dir, "*.md"))
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoDocuments, dir)
	}
	sort.Strings(paths)

	if limit <= 0 || limit > MaxDocuments {
		limit = MaxDocuments
	}
	if len(paths) > limit {
		paths = paths[:limit]
	}

	docs := make([]*Document, len(paths))
	var g errgroup.Group
	g.SetLimit(4)
	for i, path := range paths {
		g.Go(func() error {
			doc, err := ReadDocument(path, i)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

func absPath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", p, err)
	}
	return abs, nil
}
