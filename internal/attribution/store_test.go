package attribution_test

import (
	"context"
	"testing"

	"go-attribution/internal/attribution"
	"go-attribution/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStore_PersistLoad_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		record attribution.Record
	}{
		{"empty", attribution.Record{}},
		{"single", attribution.Record{attribution.Source: "newsletter"}},
		{"full", attribution.Record{
			attribution.Source:   "google",
			attribution.Medium:   "cpc",
			attribution.Campaign: "spring / sale",
			attribution.Content:  "héro \"banner\"",
			attribution.Term:     "go & wasm",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := attribution.NewStore(storage.NewMemory(), zap.NewNop())
			ctx := context.Background()

			require.NoError(t, store.Persist(ctx, tt.record))
			got, ok := store.Load(ctx)

			require.True(t, ok)
			assert.Equal(t, tt.record, got)
		})
	}
}

func TestStore_Load_NothingStored(t *testing.T) {
	store := attribution.NewStore(storage.NewMemory(), zap.NewNop())

	got, ok := store.Load(context.Background())

	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestStore_Load_StorageUnavailable(t *testing.T) {
	store := attribution.NewStore(storage.Unavailable{}, zap.NewNop())

	_, ok := store.Load(context.Background())

	assert.False(t, ok)
	assert.ErrorIs(t, store.Persist(context.Background(), attribution.Record{}), storage.ErrUnavailable)
}

func TestStore_Load_UndecodableValue(t *testing.T) {
	s := storage.NewMemory()
	require.NoError(t, s.Set(context.Background(), attribution.StorageKey, "not json"))
	store := attribution.NewStore(s, zap.NewNop())

	_, ok := store.Load(context.Background())

	assert.False(t, ok)
}

func TestStore_Load_DropsUnknownKeys(t *testing.T) {
	s := storage.NewMemory()
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, attribution.StorageKey, `{"source":"x","gclid":"y","term":""}`))
	store := attribution.NewStore(s, zap.NewNop())

	got, ok := store.Load(ctx)

	require.True(t, ok)
	assert.Equal(t, attribution.Record{attribution.Source: "x"}, got)
}

func TestStore_Persist_ReplacesPriorRecord(t *testing.T) {
	store := attribution.NewStore(storage.NewMemory(), zap.NewNop())
	ctx := context.Background()

	require.NoError(t, store.Persist(ctx, attribution.Record{attribution.Source: "first", attribution.Term: "t"}))
	require.NoError(t, store.Persist(ctx, attribution.Record{attribution.Source: "second"}))

	got, ok := store.Load(ctx)
	require.True(t, ok)
	assert.Equal(t, attribution.Record{attribution.Source: "second"}, got)
}

func TestStore_Apply_Policies(t *testing.T) {
	first := attribution.Record{attribution.Source: "first"}
	second := attribution.Record{attribution.Source: "second"}

	tests := []struct {
		name        string
		policy      attribution.Policy
		wantWritten bool
		want        attribution.Record
	}{
		{"last touch replaces", attribution.LastTouch, true, second},
		{"first touch keeps", attribution.FirstTouch, false, first},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := attribution.NewStore(storage.NewMemory(), zap.NewNop())
			ctx := context.Background()
			require.True(t, store.Apply(ctx, tt.policy, first))

			written := store.Apply(ctx, tt.policy, second)

			assert.Equal(t, tt.wantWritten, written)
			got, ok := store.Load(ctx)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStore_Apply_FirstTouchOverwritesEmptyRecord(t *testing.T) {
	store := attribution.NewStore(storage.NewMemory(), zap.NewNop())
	ctx := context.Background()
	require.NoError(t, store.Persist(ctx, attribution.Record{}))

	written := store.Apply(ctx, attribution.FirstTouch, attribution.Record{attribution.Medium: "email"})

	assert.True(t, written)
	got, _ := store.Load(ctx)
	assert.Equal(t, attribution.Record{attribution.Medium: "email"}, got)
}
