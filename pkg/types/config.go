// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// DefaultORCIDID is the researcher whose works are published when no
// identifier is configured.
const DefaultORCIDID = "0000-0002-7733-2498"

// DefaultOutput is the output file, relative to the base directory.
const DefaultOutput = "public/publications.json"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "pubsync/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// SyncConfig holds settings for one sync run.
type SyncConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// ORCIDID identifies the researcher (e.g. "0000-0002-7733-2498").
	ORCIDID string `json:"orcid_id" yaml:"orcid_id" mapstructure:"orcid_id"`

	// BaseDir anchors relative output paths. Empty means the directory of
	// the running executable.
	BaseDir string `json:"base_dir" yaml:"base_dir" mapstructure:"base_dir"`

	// Output is the JSON output path, absolute or relative to BaseDir.
	Output string `json:"output" yaml:"output" mapstructure:"output"`

	// YAMLOutput is an optional YAML mirror of the output, absolute or
	// relative to BaseDir. Empty disables it.
	YAMLOutput string `json:"yaml_output,omitempty" yaml:"yaml_output,omitempty" mapstructure:"yaml_output"`

	// ArchivePath is an optional SQLite database recording every run.
	// Empty disables the archive.
	ArchivePath string `json:"archive_path,omitempty" yaml:"archive_path,omitempty" mapstructure:"archive_path"`
}

// LogConfig selects the log level and output format.
type LogConfig struct {
	// Level is one of trace, debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is console (human-readable) or json.
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}
