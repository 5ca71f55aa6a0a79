package basicstorage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// readJSON decodes the file into v. A missing file leaves v untouched.
func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warnf("file `%s` not found, starting empty", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read `%s` - %w", path, err)
	}

	if err = json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal `%s` - %w", path, err)
	}

	return nil
}

// writeJSON replaces the file atomically: the data goes to a uniquely named
// temporary file in the same directory which is then renamed over path.
func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON - %w", err)
	}

	tmp := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")
	if err = os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write `%s` - %w", tmp, err)
	}

	if err = os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace `%s` - %w", path, err)
	}
	log.Debugf("`%s` saved", path)

	return nil
}
