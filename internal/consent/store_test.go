package consent_test

import (
	"context"
	"testing"

	"go-attribution/internal/consent"
	"go-attribution/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseDecision(t *testing.T) {
	tests := []struct {
		in   string
		want consent.Decision
	}{
		{"accepted", consent.Accepted},
		{"declined", consent.Declined},
		{"", consent.Unset},
		{"ACCEPTED", consent.Unset},
		{"yes", consent.Unset},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, consent.ParseDecision(tt.in))
		})
	}
}

func TestStore_Lifecycle(t *testing.T) {
	store := consent.NewStore(storage.NewMemory(), nil, zap.NewNop())
	ctx := context.Background()

	assert.Equal(t, consent.Unset, store.Get(ctx))
	assert.False(t, store.AnalyticsPermitted(ctx))

	require.NoError(t, store.Set(ctx, consent.Accepted))
	assert.Equal(t, consent.Accepted, store.Get(ctx))
	assert.True(t, store.AnalyticsPermitted(ctx))

	require.NoError(t, store.Set(ctx, consent.Declined))
	assert.Equal(t, consent.Declined, store.Get(ctx))
	assert.False(t, store.AnalyticsPermitted(ctx))

	store.Clear(ctx)
	assert.Equal(t, consent.Unset, store.Get(ctx))
	assert.False(t, store.AnalyticsPermitted(ctx))
}

func TestStore_SetTwice_IsIdempotent(t *testing.T) {
	s := storage.NewMemory()
	store := consent.NewStore(s, nil, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, consent.Accepted))
	require.NoError(t, store.Set(ctx, consent.Accepted))

	raw, err := s.Get(ctx, consent.Key)
	require.NoError(t, err)
	assert.Equal(t, "accepted", raw)
	assert.Equal(t, consent.Accepted, store.Get(ctx))
}

func TestStore_SetUnset_ReturnsErrInvalidDecision(t *testing.T) {
	store := consent.NewStore(storage.NewMemory(), nil, zap.NewNop())

	err := store.Set(context.Background(), consent.Unset)

	assert.ErrorIs(t, err, consent.ErrInvalidDecision)
}

func TestStore_CorruptValue_IsUnset(t *testing.T) {
	s := storage.NewMemory()
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, consent.Key, "maybe"))

	store := consent.NewStore(s, nil, zap.NewNop())

	assert.Equal(t, consent.Unset, store.Get(ctx))
	assert.False(t, store.AnalyticsPermitted(ctx))
}

func TestStore_StorageUnavailable_DegradesSilently(t *testing.T) {
	notifier := consent.NewLocalNotifier()
	notified := 0
	notifier.Subscribe(func() { notified++ })
	store := consent.NewStore(storage.Unavailable{}, notifier, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, consent.Accepted))
	store.Clear(ctx)

	assert.Equal(t, consent.Unset, store.Get(ctx))
	assert.False(t, store.AnalyticsPermitted(ctx))
	assert.Equal(t, 2, notified)
}

func TestStore_SetAndClear_RaiseNotification(t *testing.T) {
	notifier := consent.NewLocalNotifier()
	store := consent.NewStore(storage.NewMemory(), notifier, zap.NewNop())
	ctx := context.Background()

	var seen []consent.Decision
	notifier.Subscribe(func() { seen = append(seen, store.Get(ctx)) })

	require.NoError(t, store.Set(ctx, consent.Accepted))
	store.Clear(ctx)

	assert.Equal(t, []consent.Decision{consent.Accepted, consent.Unset}, seen)
}

func TestLocalNotifier_CancelRemovesOnlyThatSubscriber(t *testing.T) {
	n := consent.NewLocalNotifier()
	var order []string
	cancelA := n.Subscribe(func() { order = append(order, "a") })
	n.Subscribe(func() { order = append(order, "b") })

	n.Notify()
	cancelA()
	n.Notify()

	assert.Equal(t, []string{"a", "b", "b"}, order)
}
