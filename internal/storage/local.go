package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/tanq16/bingwall/internal/utils"
)

// Local stores images as files directly under Dir. Dir is never created.
type Local struct {
	Dir string
}

func NewLocal(dir string) *Local {
	return &Local{Dir: dir}
}

func (l *Local) Location(name string) string {
	return filepath.Join(l.Dir, name)
}

// Exists reports whether anything, of any file type, sits at the target path.
func (l *Local) Exists(_ context.Context, name string) (bool, error) {
	target := l.Location(name)
	_, err := os.Stat(target)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("%w: error checking %s: %w", utils.ErrFilesystem, target, err)
}

// Write creates or truncates the target file.
func (l *Local) Write(_ context.Context, name string, data []byte) error {
	target := l.Location(name)
	if err := os.WriteFile(target, data, 0644); err != nil {
		return fmt.Errorf("%w: error writing %s: %w", utils.ErrFilesystem, target, err)
	}
	log.Debug().Str("op", "storage/local").Str("path", target).Int("bytes", len(data)).Msg("File written")
	return nil
}
