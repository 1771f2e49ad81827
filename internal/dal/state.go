package dal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// CheckState holds the digests of the last observed page snapshot.
type CheckState struct {
	FullHash    string
	SectionHash string
}

// FileStore persists CheckState as two newline-separated hex lines in a
// single file. Anything that does not parse back into exactly two lines is
// treated as "no prior state" rather than an error, so a corrupt or missing
// file degrades to baseline mode.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() (CheckState, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return CheckState{}, false, nil
		}
		return CheckState{}, false, fmt.Errorf("read state file %s: %w", s.path, err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 || lines[0] == "" || lines[1] == "" {
		return CheckState{}, false, nil
	}

	return CheckState{FullHash: lines[0], SectionHash: lines[1]}, true, nil
}

// Save writes both digests via a temp file and rename, so a crash mid-write
// leaves either the previous state or no state, never a torn file.
func (s *FileStore) Save(state CheckState) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create state dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}

	_, err = fmt.Fprintf(tmp, "%s\n%s\n", state.FullHash, state.SectionHash)
	if cErr := tmp.Close(); err == nil {
		err = cErr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp state file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace state file %s: %w", s.path, err)
	}

	return nil
}
