package config

import "io"

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithOutputFormat sets the output format.
func (b *ConfigBuilder) WithOutputFormat(format OutputFormat) *ConfigBuilder {
	b.cfg.Output.Format = format
	return b
}

// WithPieces includes piece lists in JSON output.
func (b *ConfigBuilder) WithPieces(enabled bool) *ConfigBuilder {
	b.cfg.Output.IncludePieces = enabled
	return b
}

// WithParquetFile sets the parquet export path.
func (b *ConfigBuilder) WithParquetFile(path string) *ConfigBuilder {
	b.cfg.Output.ParquetFile = path
	return b
}

// WithSVGDir sets the diagram output directory.
func (b *ConfigBuilder) WithSVGDir(dir string) *ConfigBuilder {
	b.cfg.Output.SVGDir = dir
	return b
}

// WithSplitVariations writes each variation as a separate game.
func (b *ConfigBuilder) WithSplitVariations(enabled bool) *ConfigBuilder {
	b.cfg.Output.SplitVariations = enabled
	return b
}

// WithMaxVariationDepth sets the variation nesting limit.
func (b *ConfigBuilder) WithMaxVariationDepth(depth int) *ConfigBuilder {
	b.cfg.Parse.MaxVariationDepth = depth
	return b
}

// WithLenient enables lenient move resolution.
func (b *ConfigBuilder) WithLenient(enabled bool) *ConfigBuilder {
	b.cfg.Parse.Lenient = enabled
	return b
}

// WithDuplicateSuppression enables duplicate suppression.
func (b *ConfigBuilder) WithDuplicateSuppression(enabled bool) *ConfigBuilder {
	b.cfg.Duplicate.Suppress = enabled
	return b
}

// WithWorkers sets the number of parallel workers.
func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.cfg.Workers = n
	return b
}

// WithOutput sets the output writer.
func (b *ConfigBuilder) WithOutput(w io.Writer) *ConfigBuilder {
	b.cfg.OutputFile = w
	return b
}

// WithLog sets the log writer.
func (b *ConfigBuilder) WithLog(w io.Writer) *ConfigBuilder {
	b.cfg.LogFile = w
	return b
}

// WithVerbosity sets the verbosity level.
func (b *ConfigBuilder) WithVerbosity(level int) *ConfigBuilder {
	b.cfg.Verbosity = level
	return b
}
