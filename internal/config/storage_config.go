package config

// StorageConfig defines where persisted state lives.
type StorageConfig struct {
	SQLiteDBPath string `json:"sqlite_db_path,omitempty" yaml:"sqlite_db_path,omitempty" validate:"required"`
	HistoryLimit int    `json:"history_limit,omitempty" yaml:"history_limit,omitempty" validate:"gt=0"`
}

// NewDefaultStorageConfig creates default storage configuration
func NewDefaultStorageConfig() StorageConfig {
	return StorageConfig{
		SQLiteDBPath: "data/matchwatch.db",
		HistoryLimit: 100,
	}
}
