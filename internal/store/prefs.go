package store

import (
	"context"

	"docuquery/internal/common"
	"docuquery/internal/repositories/localdata"
)

// PrefStore holds user preferences persisted under fixed local keys.
// Currently that is just the dark-mode flag.
type PrefStore struct {
	local localdata.Repository
}

func NewPrefStore(local localdata.Repository) *PrefStore {
	return &PrefStore{local: local}
}

// DarkMode reports the persisted dark-mode preference; absent means off.
func (s *PrefStore) DarkMode(ctx context.Context) (bool, error) {
	v, err := s.local.Get(ctx, common.LocalKeyDarkMode)
	if err != nil {
		return false, err
	}
	return string(v) == "1", nil
}

// SetDarkMode persists the dark-mode preference.
func (s *PrefStore) SetDarkMode(ctx context.Context, on bool) error {
	v := []byte("0")
	if on {
		v = []byte("1")
	}
	return s.local.Set(ctx, common.LocalKeyDarkMode, v)
}

// ToggleDarkMode flips the preference and returns the new value.
func (s *PrefStore) ToggleDarkMode(ctx context.Context) (bool, error) {
	cur, err := s.DarkMode(ctx)
	if err != nil {
		return false, err
	}
	if err := s.SetDarkMode(ctx, !cur); err != nil {
		return false, err
	}
	return !cur, nil
}
