// Package watch monitors cached raw statute payload files and re-runs
// extraction when one changes, rewriting its rendered outputs. Retrieval
// itself stays external; this package only reacts to payload files some
// other process refreshes.
package watch

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/fsnotify.v1"
	"gopkg.in/yaml.v3"

	"github.com/coolbeans/kolaw/pkg/pipeline"
	"github.com/coolbeans/kolaw/pkg/rawsource"
)

// DefaultInterval is the default fallback-scan interval. Filesystem
// events drive re-extraction; the periodic scan catches files on volumes
// that deliver no events.
const DefaultInterval = 5 * time.Second

// Source describes one watched payload file.
type Source struct {
	// Name identifies the source in handler callbacks.
	Name string `yaml:"name" json:"name"`

	// Path is the payload file to watch.
	Path string `yaml:"path" json:"path"`

	// Shape is the payload's raw shape: "index", "tree", or "text".
	Shape string `yaml:"shape" json:"shape"`

	// Output is the markdown file rewritten after each extraction.
	// Empty disables writing.
	Output string `yaml:"output,omitempty" json:"output,omitempty"`

	// Record is the JSON structured-record file rewritten after each
	// extraction. Empty disables writing.
	Record string `yaml:"record,omitempty" json:"record,omitempty"`
}

// Config is the watch source list, loaded from YAML.
type Config struct {
	// Interval is the fallback-scan interval. Zero means DefaultInterval.
	Interval time.Duration `yaml:"interval,omitempty" json:"interval,omitempty"`

	Sources []Source `yaml:"sources" json:"sources"`
}

// LoadConfig reads a YAML source list.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading watch config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing watch config: %w", err)
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	return &cfg, nil
}

type fileState struct {
	modTime time.Time
	size    int64
}

// Handler receives the outcome of each triggered extraction.
type Handler func(source Source, result *pipeline.Result, err error)

// Watcher re-extracts sources on filesystem events, with a periodic
// fallback scan.
type Watcher struct {
	cfg     *Config
	states  map[string]fileState
	handler Handler
}

// New builds a watcher over the given config.
func New(cfg *Config, handler Handler) *Watcher {
	return &Watcher{
		cfg:     cfg,
		states:  make(map[string]fileState),
		handler: handler,
	}
}

// Run watches until the context is cancelled. The initial scan treats
// every existing source file as changed, so outputs are materialized on
// start. Afterwards, filesystem events trigger re-extraction immediately;
// the interval scan covers anything the events missed.
func (w *Watcher) Run(ctx context.Context) error {
	notifier, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer notifier.Close()

	// Watch each source's directory: fetchers replace payload files by
	// rename, which a file-level watch would lose track of.
	dirs := make(map[string]bool)
	for _, source := range w.cfg.Sources {
		dir := filepath.Dir(source.Path)
		if dirs[dir] {
			continue
		}
		dirs[dir] = true
		if err := notifier.Add(dir); err != nil {
			return fmt.Errorf("watching directory %s: %w", dir, err)
		}
	}

	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	w.Poll()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-notifier.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			for _, source := range w.cfg.Sources {
				if filepath.Clean(source.Path) == filepath.Clean(event.Name) {
					w.refresh(source)
				}
			}

		case _, ok := <-notifier.Errors:
			if !ok {
				return nil
			}
			// Watch errors are transient; the fallback scan still runs.

		case <-ticker.C:
			w.Poll()
		}
	}
}

// Poll runs one fallback scan, re-extracting every source whose file
// changed since it was last extracted.
func (w *Watcher) Poll() {
	for _, source := range w.cfg.Sources {
		w.refresh(source)
	}
}

// refresh re-extracts one source unless its file is absent or unchanged.
// Event bursts for a single rewrite collapse here: the first refresh
// records the new state, the rest see it unchanged.
func (w *Watcher) refresh(source Source) {
	stat, err := os.Stat(source.Path)
	if err != nil {
		return // absent or unreadable; retried on the next event or scan
	}
	state := fileState{modTime: stat.ModTime(), size: stat.Size()}
	if prev, seen := w.states[source.Path]; seen && prev == state {
		return
	}
	w.states[source.Path] = state

	result, err := ExtractFile(source)
	if w.handler != nil {
		w.handler(source, result, err)
	}
}

// ExtractFile runs one extraction over a payload file and rewrites the
// source's outputs.
func ExtractFile(source Source) (*pipeline.Result, error) {
	data, err := os.ReadFile(source.Path)
	if err != nil {
		return nil, fmt.Errorf("reading payload %s: %w", source.Path, err)
	}

	input, err := InputForShape(source.Shape, data)
	if err != nil {
		return nil, err
	}

	result, err := pipeline.Run(input, pipeline.Options{})
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", source.Path, err)
	}

	if source.Output != "" {
		if err := os.WriteFile(source.Output, []byte(result.Markdown), 0o644); err != nil {
			return result, fmt.Errorf("writing markdown %s: %w", source.Output, err)
		}
	}
	if source.Record != "" {
		record, err := result.RecordJSON()
		if err != nil {
			return result, err
		}
		if err := os.WriteFile(source.Record, record, 0o644); err != nil {
			return result, fmt.Errorf("writing record %s: %w", source.Record, err)
		}
	}
	return result, nil
}

// InputForShape builds the tagged raw input for a payload's declared
// shape.
func InputForShape(shape string, data []byte) (rawsource.Input, error) {
	switch shape {
	case "tree":
		return rawsource.TreeShape(data), nil
	case "text":
		return rawsource.TextShape(data), nil
	case "index":
		entries, err := rawsource.ParseIndexFragment(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return entries, nil
	default:
		return nil, fmt.Errorf("unknown payload shape %q (want index, tree, or text)", shape)
	}
}
