package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDarkMode_DefaultsOff(t *testing.T) {
	s := NewPrefStore(newMemLocal())

	on, err := s.DarkMode(context.Background())
	require.NoError(t, err)
	require.False(t, on)
}

func TestDarkMode_SetAndToggle(t *testing.T) {
	ctx := context.Background()
	s := NewPrefStore(newMemLocal())

	require.NoError(t, s.SetDarkMode(ctx, true))
	on, err := s.DarkMode(ctx)
	require.NoError(t, err)
	require.True(t, on)

	on, err = s.ToggleDarkMode(ctx)
	require.NoError(t, err)
	require.False(t, on)

	on, err = s.ToggleDarkMode(ctx)
	require.NoError(t, err)
	require.True(t, on)
}
