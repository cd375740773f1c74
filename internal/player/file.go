package player

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/five82/vista/internal/state"
)

// File reads player state from a JSON-lines file written by the player.
// Only the last non-blank line matters.
type File struct {
	Path string
}

// Fetch decodes the last line of the file. A missing or empty file yields
// an empty patch.
func (f *File) Fetch(ctx context.Context) (state.Patch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	line, err := lastLine(f.Path)
	if err != nil {
		return nil, err
	}
	if len(line) == 0 {
		return state.Patch{}, nil
	}
	return state.DecodePatch(line)
}

func lastLine(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open state file: %w", err)
	}
	defer file.Close()

	var last []byte
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line := bytes.TrimSpace(scanner.Bytes()); len(line) > 0 {
			last = append(last[:0], line...)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}
	return last, nil
}
