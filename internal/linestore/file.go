package linestore

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStore keeps each resource in its own text file under a directory.
type FileStore struct {
	dir   string
	names map[string]string
}

// NewFileStore returns a store rooted at dir. names maps resource names to file
// names; unmapped resources use "<name>.txt".
func NewFileStore(dir string, names map[string]string) *FileStore {
	copied := make(map[string]string, len(names))
	for k, v := range names {
		copied[k] = v
	}
	return &FileStore{dir: dir, names: copied}
}

// Path returns the file path backing a resource.
func (s *FileStore) Path(name string) string {
	if file, ok := s.names[name]; ok {
		return filepath.Join(s.dir, file)
	}
	return filepath.Join(s.dir, name+".txt")
}

// ReadLines reads the resource file line by line.
func (s *FileStore) ReadLines(ctx context.Context, name string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := os.Open(s.Path(name))
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only access.
			_ = cerr
		}
	}()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return lines, nil
}

// WriteLines writes to a temp file and renames it over the resource.
func (s *FileStore) WriteLines(ctx context.Context, name string, lines []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := s.Path(name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	writer := bufio.NewWriter(tmpFile)
	for _, line := range lines {
		if _, err := fmt.Fprintln(writer, line); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", name, err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", name, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}
