package config

import "io"

// DuplicateConfig holds settings for duplicate game detection.
type DuplicateConfig struct {
	// Suppress drops games whose final position and length match an earlier game.
	Suppress bool

	// DuplicateFile receives the dropped games, if set.
	DuplicateFile io.Writer

	// MaxCapacity bounds the number of stored signatures; 0 means no limit.
	MaxCapacity int
}

// NewDuplicateConfig creates a DuplicateConfig with default values.
func NewDuplicateConfig() *DuplicateConfig {
	return &DuplicateConfig{}
}
