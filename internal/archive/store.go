package archive

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	indexFile   = "index.html"
	patchSuffix = ".patch"
)

// Diff is one archived diff revision. Patch holds the raw bytes as served.
type Diff struct {
	RevisionID int
	DiffID     int
	Patch      []byte
}

// PatchName returns the file name used for a diff, e.g. "r1234-diff2.patch".
func PatchName(revisionID, diffID int) string {
	return fmt.Sprintf("r%d-diff%d%s", revisionID, diffID, patchSuffix)
}

// Store reads and writes the archive tree rooted at a directory.
type Store struct {
	root string
}

// NewStore creates the root directory if needed.
func NewStore(root string) (*Store, error) {
	if root == "" {
		return nil, errors.New("output directory is empty")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &Store{root: root}, nil
}

// OpenStore returns a Store for an existing root without creating it.
func OpenStore(root string) *Store {
	return &Store{root: root}
}

// Root returns the output root.
func (s *Store) Root() string {
	return s.root
}

// RevisionDir returns the directory holding a revision's files.
func (s *Store) RevisionDir(revisionID int) string {
	return filepath.Join(s.root, strconv.Itoa(revisionID))
}

// PatchPath returns the path of a diff's patch file.
func (s *Store) PatchPath(revisionID, diffID int) string {
	return filepath.Join(s.RevisionDir(revisionID), PatchName(revisionID, diffID))
}

// IndexPath returns the path of a revision's index page.
func (s *Store) IndexPath(revisionID int) string {
	return filepath.Join(s.RevisionDir(revisionID), indexFile)
}

// EnsureRevisionDir creates the revision directory. It is a no-op if the
// directory already exists.
func (s *Store) EnsureRevisionDir(revisionID int) error {
	if err := os.MkdirAll(s.RevisionDir(revisionID), 0o755); err != nil {
		return fmt.Errorf("creating revision directory: %w", err)
	}
	return nil
}

// HasPatch reports whether the patch file for a diff exists.
func (s *Store) HasPatch(revisionID, diffID int) bool {
	_, err := os.Stat(s.PatchPath(revisionID, diffID))
	return err == nil
}

// WritePatch writes d.Patch unmodified and returns the file path.
func (s *Store) WritePatch(d Diff) (string, error) {
	path := s.PatchPath(d.RevisionID, d.DiffID)
	if err := os.WriteFile(path, d.Patch, 0o644); err != nil {
		return "", fmt.Errorf("writing patch: %w", err)
	}
	return path, nil
}

// ReadPatch returns the stored bytes of a diff.
func (s *Store) ReadPatch(revisionID, diffID int) (Diff, error) {
	data, err := os.ReadFile(s.PatchPath(revisionID, diffID))
	if err != nil {
		return Diff{}, fmt.Errorf("reading patch: %w", err)
	}
	return Diff{RevisionID: revisionID, DiffID: diffID, Patch: data}, nil
}

// WriteIndex renders and overwrites the revision's index page, listing
// diffs 1 through diffCount.
func (s *Store) WriteIndex(revisionID, diffCount int) (string, error) {
	path := s.IndexPath(revisionID)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating index: %w", err)
	}
	if err := RenderIndex(f, revisionID, diffCount); err != nil {
		f.Close()
		return "", fmt.Errorf("rendering index: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("writing index: %w", err)
	}
	return path, nil
}

// Stats describes the contents of an archive tree.
type Stats struct {
	Dir        string `json:"dir"`
	Revisions  int    `json:"revisions"`
	Patches    int    `json:"patches"`
	Indexes    int    `json:"indexes"`
	TotalBytes int64  `json:"totalBytes"`
}

// GetStats walks the revision directories under the root. Entries that are
// not numeric directories are ignored.
func (s *Store) GetStats() (Stats, error) {
	stats := Stats{Dir: s.root}
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return stats, nil
		}
		return stats, fmt.Errorf("reading output directory: %w", err)
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := strconv.Atoi(e.Name()); err != nil {
			continue
		}
		stats.Revisions++

		files, err := os.ReadDir(filepath.Join(s.root, e.Name()))
		if err != nil {
			return stats, fmt.Errorf("reading revision directory: %w", err)
		}
		for _, f := range files {
			if f.IsDir() {
				continue
			}
			switch {
			case f.Name() == indexFile:
				stats.Indexes++
			case strings.HasSuffix(f.Name(), patchSuffix):
				info, err := f.Info()
				if err != nil {
					continue
				}
				stats.Patches++
				stats.TotalBytes += info.Size()
			}
		}
	}
	return stats, nil
}
