package colorfind

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// PresetStore merges user-defined presets from a JSON file over the
// builtins. The file maps names to bounds:
//
//	{"orange": {"lower": {"h": 10, "s": 100, "v": 100},
//	            "upper": {"h": 25, "s": 255, "v": 255}}}
//
// Watch keeps the store in sync with the file while a context lives.
type PresetStore struct {
	mu      sync.RWMutex
	presets map[string]Bounds
	path    string
}

// LoadPresets reads the preset file and returns a store backed by it.
func LoadPresets(path string) (*PresetStore, error) {
	ps := &PresetStore{path: path}
	if err := ps.reload(); err != nil {
		return nil, err
	}
	return ps, nil
}

func (ps *PresetStore) reload() error {
	data, err := os.ReadFile(ps.path)
	if err != nil {
		return fmt.Errorf("failed to read presets: %w", err)
	}

	var file map[string]Bounds
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse presets %q: %w", ps.path, err)
	}

	merged := maps.Clone(builtins)
	for name, b := range file {
		merged[name] = b.Clamp()
	}

	ps.mu.Lock()
	ps.presets = merged
	ps.mu.Unlock()
	return nil
}

// Names lists every known preset name, builtin and user-defined.
func (ps *PresetStore) Names() []string {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	names := make([]string, 0, len(ps.presets))
	for name := range ps.presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Get resolves a preset name against the store.
func (ps *PresetStore) Get(name string) (Bounds, error) {
	ps.mu.RLock()
	b, ok := ps.presets[name]
	ps.mu.RUnlock()
	if !ok {
		names := ps.Names()
		log.Warn().Str("name", name).Strs("available", names).Msg("color not defined")
		return Bounds{}, fmt.Errorf("%w: %q (available: %s)",
			ErrUnknownPreset, name, strings.Join(names, ", "))
	}
	return b, nil
}

// Spec returns a ColorSpec resolving name against the store at Update
// time, so watched edits take effect on the next frame.
func (ps *PresetStore) Spec(name string) ColorSpec {
	return storeSpec{ps: ps, name: name}
}

type storeSpec struct {
	ps   *PresetStore
	name string
}

func (s storeSpec) bounds() (Bounds, error) {
	return s.ps.Get(s.name)
}

// Watch reloads the store whenever the preset file is written, until
// ctx is done. Parse failures keep the previous presets.
func (ps *PresetStore) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// watch the directory, editors replace files on save
	if err := watcher.Add(filepath.Dir(ps.path)); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(ps.path) {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			if err := ps.reload(); err != nil {
				log.Warn().Err(err).Msg("presets reload failed")
				continue
			}
			log.Debug().Str("path", ps.path).Msg("presets reloaded")

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error().Err(err).Msg("fsnotify error")
		}
	}
}
