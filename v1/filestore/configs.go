package filestore

import "os"

// DefaultFileMode is the permission used for collection files.
const DefaultFileMode os.FileMode = 0o644

// Config defines where collection files are kept.
type Config struct {
	// Directory holds one <name>.json file per collection. It is created on
	// first use when missing.
	Directory string `yaml:"directory" envconfig:"JSONDB_FILESTORE_DIRECTORY"`

	// FileMode is applied to newly written collection files.
	// Default: 0644
	FileMode os.FileMode `yaml:"file_mode" envconfig:"JSONDB_FILESTORE_FILE_MODE"`
}
