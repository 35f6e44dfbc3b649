package preference

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/shopfront/internal/client/kvstore"
	"github.com/dmitrijs2005/shopfront/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stored(t *testing.T, kv kvstore.Store) string {
	t.Helper()
	v, ok, err := kv.Get(context.Background(), common.ThemeSettingsKey)
	require.NoError(t, err)
	require.True(t, ok)
	return v
}

type failingKV struct {
	kvstore.Store
	getErr, setErr error
}

func (f failingKV) Get(ctx context.Context, key string) (string, bool, error) {
	if f.getErr != nil {
		return "", false, f.getErr
	}
	return f.Store.Get(ctx, key)
}

func (f failingKV) Set(ctx context.Context, key, value string) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.Store.Set(ctx, key, value)
}

func TestLoad_Defaults(t *testing.T) {
	ctx := context.Background()

	cases := map[string]kvstore.Store{
		"absent":   kvstore.NewMemoryStore(),
		"broken":   failingKV{Store: kvstore.NewMemoryStore(), getErr: errors.New("io")},
		"garbage":  withRecord(t, `{darkTheme: tru`),
		"array":    withRecord(t, `[true]`),
		"scalar":   withRecord(t, `true`),
		"emptystr": withRecord(t, ``),
	}

	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			c := Load(ctx, kv, nil)
			assert.False(t, c.DarkTheme())
			assert.Equal(t, DefaultRecord, c.Raw())
			assert.Equal(t, DefaultPreset, c.PresetName())
		})
	}
}

func withRecord(t *testing.T, raw string) kvstore.Store {
	t.Helper()
	kv := kvstore.NewMemoryStore()
	require.NoError(t, kv.Set(context.Background(), common.ThemeSettingsKey, raw))
	return kv
}

func TestLoad_ReadsStoredRecord(t *testing.T) {
	c := Load(context.Background(), withRecord(t, `{"darkTheme":true,"primaryPresetName":"emerald"}`), nil)
	assert.Equal(t, Settings{DarkTheme: true, PrimaryPresetName: "emerald"}, c.Settings())
}

func TestPresetName_LegacyField(t *testing.T) {
	c := Load(context.Background(), withRecord(t, `{"darkTheme":false,"primary":"blue"}`), nil)
	assert.Equal(t, "blue", c.PresetName())
}

func TestToggleDark_PersistsImmediately(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemoryStore()
	c := Load(ctx, kv, nil)

	require.NoError(t, c.ToggleDark(ctx))
	assert.True(t, c.DarkTheme())
	assert.JSONEq(t, `{"darkTheme":true}`, stored(t, kv))

	reloaded := Load(ctx, kv, nil)
	assert.True(t, reloaded.DarkTheme())
}

func TestToggleDark_TwiceRestoresRecordAndKeepsOtherFields(t *testing.T) {
	ctx := context.Background()
	original := `{"darkTheme":false,"primaryPresetName":"noir","fontScale":1.25,"menu":{"compact":true}}`
	kv := withRecord(t, original)
	c := Load(ctx, kv, nil)

	require.NoError(t, c.ToggleDark(ctx))
	afterOne := stored(t, kv)
	assert.Contains(t, afterOne, `"primaryPresetName":"noir"`)
	assert.Contains(t, afterOne, `"menu":{"compact":true}`)
	assert.True(t, c.DarkTheme())

	require.NoError(t, c.ToggleDark(ctx))
	assert.Equal(t, original, stored(t, kv))
	assert.Equal(t, "noir", c.PresetName())
}

func TestToggleDark_RecordWithoutFlag(t *testing.T) {
	ctx := context.Background()
	kv := withRecord(t, `{"primaryPresetName":"noir"}`)
	c := Load(ctx, kv, nil)

	loaded := c.Raw()
	assert.JSONEq(t, `{"primaryPresetName":"noir","darkTheme":false}`, loaded)
	assert.False(t, c.DarkTheme())

	require.NoError(t, c.ToggleDark(ctx))
	require.NoError(t, c.ToggleDark(ctx))
	assert.Equal(t, loaded, stored(t, kv))
	assert.Equal(t, loaded, c.Raw())
	assert.Equal(t, "noir", c.PresetName())
}

func TestToggleDark_StoreFailure(t *testing.T) {
	ctx := context.Background()
	kv := failingKV{Store: kvstore.NewMemoryStore(), setErr: errors.New("readonly")}
	c := Load(ctx, kv, nil)

	err := c.ToggleDark(ctx)
	require.Error(t, err)
	assert.True(t, c.DarkTheme(), "memory follows the toggle")
}

func TestSetPreset(t *testing.T) {
	ctx := context.Background()
	kv := withRecord(t, `{"darkTheme":true}`)
	c := Load(ctx, kv, nil)

	require.NoError(t, c.SetPreset(ctx, "rose"))
	assert.Equal(t, "rose", c.PresetName())
	assert.JSONEq(t, `{"darkTheme":true,"primaryPresetName":"rose"}`, stored(t, kv))

	err := c.SetPreset(ctx, "neon")
	require.ErrorIs(t, err, ErrUnknownPreset)
	assert.Equal(t, "rose", c.PresetName())
}
