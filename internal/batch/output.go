package batch

import (
	"fmt"
	"os"
	"path/filepath"
)

// writeFileAtomic writes content to path through a temp file in the same
// directory, then renames it into place. An existing file is replaced.
// On failure the temp file is removed and path is left untouched.
func writeFileAtomic(path, content string) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("cannot create output file: %w", err)
	}
	tmp := f.Name()

	writeErr := func() error {
		if _, err := f.WriteString(content); err != nil {
			_ = f.Close()
			return fmt.Errorf("failed to write output: %w", err)
		}
		if err := f.Chmod(0644); err != nil { // #nosec G302 -- output file with standard permissions
			_ = f.Close()
			return fmt.Errorf("failed to set output permissions: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}()
	if writeErr != nil {
		_ = os.Remove(tmp)
		return writeErr
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to move output into place: %w", err)
	}
	return nil
}
