package storage

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/Tiliavir/trivial-time-tracker/internal/codec"
)

// DefaultPath returns the default activity log (~/.ttt/activities.log).
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".ttt", "activities.log"), nil
}

// Read loads every line of the file at path in file order, numbered from 1.
// Lines that are not valid UTF-8 are skipped. Parse failures are kept on the
// returned lines, only I/O failures are returned as error.
func Read(f codec.Format, path string) ([]Line, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("storage error reading %s: %w", path, err)
	}
	defer file.Close()

	var lines []Line
	r := bufio.NewReader(file)
	number := 0
	for {
		text, err := r.ReadString('\n')
		if len(text) > 0 {
			number++
			if utf8.ValidString(text) {
				lines = append(lines, NewLine(f, text, number))
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("storage error reading %s: %w", path, err)
		}
	}
	return lines, nil
}

// Write replaces the content of the file at path with lines. Unchanged lines
// are written verbatim, changed lines are re-serialized with f. The file is
// created if needed and truncated otherwise.
func Write(f codec.Format, path string, lines []Line) error {
	var buf bytes.Buffer
	for i := range lines {
		buf.WriteString(lines[i].text(f))
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("storage error writing %s: %w", path, err)
	}
	if _, err := file.Write(buf.Bytes()); err != nil {
		file.Close()
		return fmt.Errorf("storage error writing %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("storage error writing %s: %w", path, err)
	}
	return nil
}

// ReadOrEmpty is Read, but a missing file yields no lines.
func ReadOrEmpty(f codec.Format, path string) ([]Line, error) {
	lines, err := Read(f, path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return lines, err
}
