package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog/log"
)

// Store keeps media files under a single directory, named by random UUIDs.
type Store struct {
	dir string
}

// NewStore returns a Store rooted at dir, or at the system temp dir if dir is empty. The directory is created if
// missing.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		dir = os.TempDir()
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("error creating media dir %w", err)
	}

	return &Store{dir: dir}, nil
}

// Save writes data to a new file and returns its path. extension may be given with or without the leading dot.
func (s *Store) Save(data []byte, extension string) (string, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return "", err
	}

	if extension != "" && !strings.HasPrefix(extension, ".") {
		extension = "." + extension
	}

	path := filepath.Join(s.dir, id.String()+extension)

	log.Debug().Int("bytes", len(data)).Str("path", path).Msg("creating temp file")

	if err := os.WriteFile(path, data, 0o600); err != nil {
		err = fmt.Errorf("error writing temp file %w", err)
		log.Error().Err(err).Send()
		return "", err
	}

	return path, nil
}

// Read returns the content of a file previously returned by Save.
func (s *Store) Read(path string) ([]byte, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		err = fmt.Errorf("error reading temp file %w", err)
		log.Error().Err(err).Send()
		return nil, err
	}

	return buf, nil
}

// Remove deletes the file at path. Failures are only logged.
func (s *Store) Remove(path string) {
	if err := os.Remove(path); err != nil {
		log.Warn().Str("path", path).Err(err).Msg("could not clean up temp file")
		return
	}

	log.Debug().Str("path", path).Msg("cleaned up temp file")
}
