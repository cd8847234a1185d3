package collection

// DefaultLoadConcurrency bounds how many collections Load reads at once.
const DefaultLoadConcurrency = 4

// Config defines the store settings.
type Config struct {
	// AutoCreateCollections creates a missing collection on first write
	// instead of failing with ErrCollectionNotFound.
	AutoCreateCollections bool `yaml:"auto_create_collections" envconfig:"JSONDB_AUTO_CREATE_COLLECTIONS"`

	// LoadConcurrency is the number of collections loaded in parallel.
	// Default: 4
	LoadConcurrency int `yaml:"load_concurrency" envconfig:"JSONDB_LOAD_CONCURRENCY"`
}
