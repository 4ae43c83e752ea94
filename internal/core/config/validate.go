package config

import (
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"
)

// Validate checks that the configuration is structurally valid. Timer
// values are normalized by applyDefaults before this runs, so only genuine
// misconfiguration fails here.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("storage", c.Storage, isKnownStorage),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
		c.validateIgnoreFolders(),
	)
}

func (c *Config) validateIgnoreFolders() error {
	var errs criterio.FieldErrorsBuilder
	for i, pattern := range c.IgnoreFolders {
		if !doublestar.ValidatePattern(pattern) {
			errs = errs.Append(fmt.Sprintf("ignore_folders[%d]", i), fmt.Errorf("invalid glob pattern %q", pattern))
		}
	}
	return errs.ToError()
}

func isKnownStorage(storage string) error {
	switch storage {
	case StorageJSONFile, StorageSQLite:
		return nil
	default:
		return fmt.Errorf("unknown storage backend %q", storage)
	}
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return fmt.Errorf("data directory cannot be empty")
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}
