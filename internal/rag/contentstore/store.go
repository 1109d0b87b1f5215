package contentstore

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/rag/vectorindex"
	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/pkg/logger_i"
)

const fingerprintSampleSize = 1000

// Fingerprint identifies one version of one document: the url hash keeps
// different sources apart, the leading-bytes hash invalidates the cache when
// the document behind a stable url changes.
func Fingerprint(url string, leading []byte) string {
	if len(leading) > fingerprintSampleSize {
		leading = leading[:fingerprintSampleSize]
	}
	urlSum := md5.Sum([]byte(url))
	contentSum := md5.Sum(leading)
	return hex.EncodeToString(urlSum[:]) + "_" + hex.EncodeToString(contentSum[:])
}

// Store persists built vector indexes on disk, keyed by document fingerprint.
type Store struct {
	dir    string
	logger *logger_i.Logger
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory %s: %w", dir, err)
	}
	return &Store{
		dir:    dir,
		logger: logger_i.NewLogger("contentStore"),
	}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(fingerprint string) string {
	return filepath.Join(s.dir, fingerprint+".gob")
}

// Lookup loads a cached index. A missing or unreadable entry is not an error,
// the caller just rebuilds; corrupt entries are removed on the way out.
func (s *Store) Lookup(fingerprint string) (*vectorindex.Index, bool) {
	f, err := os.Open(s.path(fingerprint))
	if err != nil {
		return nil, false
	}
	defer f.Close()

	ix, err := vectorindex.Decode(f)
	if err != nil {
		s.logger.Warn("discarding corrupt cache entry", "fingerprint", fingerprint, "error", err)
		_ = os.Remove(s.path(fingerprint))
		return nil, false
	}
	return ix, true
}

// Save writes the index under its fingerprint. Write failures are logged and
// swallowed: the cache is an optimization, never a reason to fail a request.
func (s *Store) Save(fingerprint string, ix *vectorindex.Index) {
	tmp, err := os.CreateTemp(s.dir, fingerprint+".tmp")
	if err != nil {
		s.logger.Warn("cache write skipped", "fingerprint", fingerprint, "error", err)
		return
	}
	defer os.Remove(tmp.Name())

	if err := ix.Encode(tmp); err != nil {
		tmp.Close()
		s.logger.Warn("cache encode failed", "fingerprint", fingerprint, "error", err)
		return
	}
	if err := tmp.Close(); err != nil {
		s.logger.Warn("cache close failed", "fingerprint", fingerprint, "error", err)
		return
	}
	if err := os.Rename(tmp.Name(), s.path(fingerprint)); err != nil {
		s.logger.Warn("cache rename failed", "fingerprint", fingerprint, "error", err)
	}
}

// Stats reports the cache directory contents for the stats endpoint.
func (s *Store) Stats() (files []string, totalSizeMB float64, err error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, 0, fmt.Errorf("reading cache directory: %w", err)
	}

	var totalBytes int64
	files = []string{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".gob") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, e.Name())
		totalBytes += info.Size()
	}
	return files, float64(totalBytes) / (1024 * 1024), nil
}

// Clear removes every cached index and returns how many entries went away.
func (s *Store) Clear() (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("reading cache directory: %w", err)
	}

	removed := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".gob") {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, e.Name())); err != nil {
			s.logger.Warn("failed to remove cache entry", "file", e.Name(), "error", err)
			continue
		}
		removed++
	}
	return removed, nil
}
