package store

import (
	"path/filepath"
	"strconv"

	"github.com/spf13/afero"
)

// entryName is the fixed file name of every cached entry.
const entryName = "input"

// EntryDir returns <root>/<day>.
func EntryDir(root string, day int) string {
	return filepath.Join(root, strconv.Itoa(day))
}

// EntryPath returns <root>/<day>/input.
func EntryPath(root string, day int) string {
	return filepath.Join(EntryDir(root, day), entryName)
}

// Store is a directory of cached inputs laid out one file per day.
// There is no locking: concurrent writers of the same day race and the last one wins.
type Store struct {
	fs   afero.Fs
	root string
}

// New creates a Store rooted at root on fs. A nil fs means the OS filesystem.
func New(fs afero.Fs, root string) *Store {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Store{fs: fs, root: root}
}

// Root returns the store's root directory
func (s *Store) Root() string {
	return s.root
}

// Path returns the path of the entry for day
func (s *Store) Path(day int) string {
	return EntryPath(s.root, day)
}

// Lookup reads the entry for day. Any read failure, including a missing file,
// reports a miss so that the caller refetches.
func (s *Store) Lookup(day int) (string, bool) {
	data, err := afero.ReadFile(s.fs, s.Path(day))
	if err != nil {
		return "", false
	}
	return string(data), true
}

// Write stores content for day, creating missing directories.
// The returned *WriteError names the path that could not be created or written.
func (s *Store) Write(day int, content string) error {
	dir := EntryDir(s.root, day)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return &WriteError{Path: dir, Err: err}
	}

	path := s.Path(day)
	if err := afero.WriteFile(s.fs, path, []byte(content), 0o644); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

// WriteError reports a failed write-back
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return "write " + e.Path + ": " + e.Err.Error()
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
