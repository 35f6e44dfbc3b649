// Package preference holds the UI theme settings of the client: the dark
// mode flag and the primary colour preset.
//
// The whole record is one JSON value under the "themeSettings" key of the
// local store. It is read once, synchronously, when the container is built,
// and written back in full on every change. Only the changed field is
// rewritten; fields this package does not know about are kept verbatim.
package preference

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/shopfront/internal/client/kvstore"
	"github.com/dmitrijs2005/shopfront/internal/common"
	"github.com/dmitrijs2005/shopfront/internal/logging"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const (
	DefaultRecord = `{"darkTheme":false}`
	DefaultPreset = "noir"

	darkThemeField = "darkTheme"
	presetField    = "primaryPresetName"
	// legacyPresetField is where older records kept the preset name.
	legacyPresetField = "primary"
)

var ErrUnknownPreset = errors.New("unknown preset")

// Presets lists the accepted primary preset names.
var Presets = []string{
	"noir", "emerald", "green", "lime", "orange", "amber", "yellow", "teal",
	"cyan", "sky", "blue", "indigo", "violet", "purple", "fuchsia", "pink", "rose",
}

// Settings is a typed view of the record.
type Settings struct {
	DarkTheme         bool
	PrimaryPresetName string
}

type Container struct {
	kv     kvstore.Store
	logger logging.Logger

	mu  sync.RWMutex
	raw string
}

// Load builds the container from the stored record. A missing, unreadable
// or malformed record silently yields DefaultRecord. A record without the
// dark mode flag gets it set to false in memory, so the first write stores
// the flag and a double toggle gives back the loaded record.
func Load(ctx context.Context, kv kvstore.Store, logger logging.Logger) *Container {
	if logger == nil {
		logger = logging.Nop()
	}
	c := &Container{kv: kv, logger: logger.With("component", "preference"), raw: DefaultRecord}

	v, ok, err := kv.Get(ctx, common.ThemeSettingsKey)
	switch {
	case err != nil:
		c.logger.Debug(ctx, "theme settings unreadable, using defaults", "error", err)
	case !ok:
	case !gjson.Valid(v) || !gjson.Parse(v).IsObject():
		c.logger.Debug(ctx, "theme settings malformed, using defaults")
	case !gjson.Get(v, darkThemeField).Exists():
		if raw, err := sjson.Set(v, darkThemeField, false); err == nil {
			c.raw = raw
		}
	default:
		c.raw = v
	}
	return c
}

func (c *Container) DarkTheme() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return gjson.Get(c.raw, darkThemeField).Bool()
}

// PresetName returns the primary preset, DefaultPreset when unset.
func (c *Container) PresetName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return presetOf(c.raw)
}

func presetOf(raw string) string {
	if p := gjson.Get(raw, presetField).String(); p != "" {
		return p
	}
	if p := gjson.Get(raw, legacyPresetField).String(); p != "" {
		return p
	}
	return DefaultPreset
}

func (c *Container) Settings() Settings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Settings{
		DarkTheme:         gjson.Get(c.raw, darkThemeField).Bool(),
		PrimaryPresetName: presetOf(c.raw),
	}
}

// Raw returns the serialized record as it is (or would be) stored.
func (c *Container) Raw() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.raw
}

// ToggleDark flips the dark mode flag and stores the full record at once.
// The in-memory flag is flipped even if storing fails.
func (c *Container) ToggleDark(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := !gjson.Get(c.raw, darkThemeField).Bool()
	return c.update(ctx, darkThemeField, next)
}

// SetPreset selects one of Presets as the primary preset.
func (c *Container) SetPreset(ctx context.Context, name string) error {
	if !slices.Contains(Presets, name) {
		return fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.update(ctx, presetField, name)
}

// update rewrites one field; callers hold c.mu.
func (c *Container) update(ctx context.Context, field string, value any) error {
	raw, err := sjson.Set(c.raw, field, value)
	if err != nil {
		return fmt.Errorf("update %s: %w", field, err)
	}
	c.raw = raw

	if err := c.kv.Set(ctx, common.ThemeSettingsKey, raw); err != nil {
		c.logger.Warn(ctx, "failed to store theme settings", "error", err)
		return fmt.Errorf("store theme settings: %w", err)
	}
	return nil
}
