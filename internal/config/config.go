// Package config loads racelens configuration: logging settings, the
// report database location and the sanitizer denylists.
package config

// Config is the complete racelens configuration.
type Config struct {
	Version  string   `yaml:"version"`
	Settings Settings `yaml:"settings"`
	Sanitize Sanitize `yaml:"sanitize"`
}

// Settings contains global options.
type Settings struct {
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file,omitempty"`
	Database string `yaml:"database,omitempty"`
}

// Sanitize carries the denylists driving stack sanitization. All entries
// are matched by substring containment against trace frames; the lists are
// configuration data so new lock-free libraries can be covered without
// touching the pipeline.
type Sanitize struct {
	// FrameFunctions removes individual frames whose function name
	// contains an entry (atomic wrappers, CAS/tagged-pointer primitives).
	FrameFunctions []string `yaml:"frame_functions"`

	// InternalLines and InternalFunctions drop whole transitions whose
	// every frame matches: resolved line contents for guard acquisition
	// helpers, function names for hazard-pointer management.
	InternalLines     []string `yaml:"internal_lines"`
	InternalFunctions []string `yaml:"internal_functions"`
}

// DefaultConfig returns the built-in configuration. The denylists cover
// the libraries the bundled catalog exercises: libstdc++/libcds atomics,
// boost.lockfree primitives and libcds hazard-pointer guards.
func DefaultConfig() *Config {
	return &Config{
		Version: "1",
		Settings: Settings{
			LogLevel: "info",
		},
		Sanitize: Sanitize{
			FrameFunctions: []string{
				"::atomic",
				"__atomic_base",
				"boost::lockfree::CAS",
				"boost::lockfree::tagged_ptr",
			},
			InternalLines: []string{
				"guards.protect",
			},
			InternalFunctions: []string{
				"AllocateHPRec",
				"HPAllocator",
				"Guard",
			},
		},
	}
}
