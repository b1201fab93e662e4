// Package sessionfile persists the session as a JSON file, the process-local
// analog of the browser storefront's localStorage token.
package sessionfile

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/go-faster/errors"

	"github.com/xenking/shophub/internal/domain/session"
)

// Store reads and writes a single session file.
type Store struct {
	path string
}

// New creates a Store at the given path. An empty path resolves to
// shophub/session.json under the user config directory.
func New(path string) (*Store, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, errors.Wrap(err, "resolve config dir")
		}
		path = filepath.Join(dir, "shophub", "session.json")
	}
	return &Store{path: path}, nil
}

// Save writes the session, creating parent directories as needed. The file
// is written 0600 since it carries a bearer credential.
func (s *Store) Save(sess session.Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return errors.Wrap(err, "create session dir")
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return errors.Wrap(err, "encode session")
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return errors.Wrap(err, "write session file")
	}
	return nil
}

// Load reads the persisted session. A missing file is not an error, it just
// means there is nothing to restore.
func (s *Store) Load() (session.Session, bool, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return session.Session{}, false, nil
	}
	if err != nil {
		return session.Session{}, false, errors.Wrap(err, "read session file")
	}

	var sess session.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return session.Session{}, false, errors.Wrap(err, "decode session")
	}
	if sess.Token == "" {
		return session.Session{}, false, nil
	}
	return sess, true, nil
}

// Clear removes the session file. Removing an absent file succeeds.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return errors.Wrap(err, "remove session file")
	}
	return nil
}
