package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// HighScoreFile keeps the best score as a single decimal integer in a text file
type HighScoreFile struct {
	path string
}

func NewHighScoreFile(path string) *HighScoreFile {
	return &HighScoreFile{path: path}
}

func (f *HighScoreFile) Path() string {
	return f.path
}

// Load returns the stored score. A missing file is not an error and yields 0.
func (f *HighScoreFile) Load() (int, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read high score: %w", err)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return 0, nil
	}
	score, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("parse high score %q: %w", text, err)
	}
	if score < 0 {
		return 0, fmt.Errorf("negative high score %d", score)
	}
	return score, nil
}

// Save replaces the file contents through a temp file and rename
func (f *HighScoreFile) Save(score int) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create high score dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".highscore-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(strconv.Itoa(score)); err != nil {
		tmp.Close()
		return fmt.Errorf("write high score: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace high score: %w", err)
	}
	return nil
}
