// Package config loads dispatcher settings from YAML or JSON files.
package config

import (
	"errors"
	"fmt"

	"github.com/telroute/telroute/pkg/telroute"
	"github.com/telroute/telroute/pkg/telroute/fsm"
)

// Storage backends accepted by StorageSettings.Backend.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Settings are the host-facing dispatcher knobs.
type Settings struct {
	// Workers is the number of concurrent dispatch workers. 0 means 1.
	Workers int `yaml:"workers" json:"workers"`

	// SkipUpdates lists update kinds not to request from the source, even
	// when the tree has handlers for them.
	SkipUpdates []string `yaml:"skip_updates" json:"skip_updates"`

	// LogLevel is one of debug, info, warn, error. Empty means info.
	LogLevel string `yaml:"log_level" json:"log_level"`

	// Metrics enables the OpenTelemetry metrics recorder.
	Metrics bool `yaml:"metrics" json:"metrics"`

	// Tracing enables the OpenTelemetry span manager.
	Tracing bool `yaml:"tracing" json:"tracing"`

	// Storage configures the FSM storage backend.
	Storage StorageSettings `yaml:"storage" json:"storage"`
}

// StorageSettings selects and parameterizes the FSM storage backend.
type StorageSettings struct {
	// Backend is "memory" or "sqlite". Empty means memory.
	Backend string `yaml:"backend" json:"backend"`

	// Path is the SQLite database path. Required for the sqlite backend;
	// ":memory:" is accepted.
	Path string `yaml:"path" json:"path"`
}

// Default returns settings with every knob at its default.
func Default() Settings {
	return Settings{
		Workers:  1,
		LogLevel: "info",
		Storage:  StorageSettings{Backend: BackendMemory},
	}
}

// Validate checks the settings, collecting every problem.
func (s Settings) Validate() error {
	var errs []error

	if s.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", s.Workers))
	}

	for _, name := range s.SkipUpdates {
		if !telroute.UpdateKind(name).Valid() {
			errs = append(errs, fmt.Errorf("unknown update kind in skip_updates: %q", name))
		}
	}

	switch s.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log_level: %q", s.LogLevel))
	}

	switch s.Storage.Backend {
	case "", BackendMemory:
	case BackendSQLite:
		if s.Storage.Path == "" {
			errs = append(errs, errors.New("storage.path is required for the sqlite backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage backend: %q", s.Storage.Backend))
	}

	return errors.Join(errs...)
}

// SkipKinds returns SkipUpdates as update kinds.
func (s Settings) SkipKinds() []telroute.UpdateKind {
	out := make([]telroute.UpdateKind, len(s.SkipUpdates))
	for i, name := range s.SkipUpdates {
		out[i] = telroute.UpdateKind(name)
	}
	return out
}

// BuildStorage constructs the configured FSM storage backend.
func (s Settings) BuildStorage() (fsm.Storage, error) {
	switch s.Storage.Backend {
	case "", BackendMemory:
		return fsm.NewMemoryStorage(), nil
	case BackendSQLite:
		return fsm.NewSQLiteStorage(s.Storage.Path)
	default:
		return nil, fmt.Errorf("unknown storage backend: %q", s.Storage.Backend)
	}
}
