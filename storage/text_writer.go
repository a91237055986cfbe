package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WritePrompt creates (or truncates) the file at path and writes prompt to it.
// Intermediate directories are created automatically.
func WritePrompt(path, prompt string) (int, error) {
	f, err := createTruncated(path)
	if err != nil {
		return 0, fmt.Errorf("prompt: %w", err)
	}

	n, err := io.WriteString(f, prompt)
	if err != nil {
		_ = f.Close()
		return n, fmt.Errorf("prompt: write %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return n, fmt.Errorf("prompt: close %q: %w", path, err)
	}
	return n, nil
}

// FileSink returns an opener for the diagnostic log at path. Each call
// truncates the file.
func FileSink(path string) func() (io.WriteCloser, error) {
	return func() (io.WriteCloser, error) {
		f, err := createTruncated(path)
		if err != nil {
			return nil, fmt.Errorf("sink: %w", err)
		}
		return f, nil
	}
}

func createTruncated(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create file %q: %w", path, err)
	}
	return f, nil
}
