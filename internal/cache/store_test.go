package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/steamrisk/internal/model"
)

func TestLookup_HitSkipsFetch(t *testing.T) {
	s := NewStore()
	s.Put(570, &model.AppDetails{AppID: 570, Name: "Dota 2"})

	fetches := 0
	d, live, err := s.Lookup(context.Background(), 570, func(ctx context.Context, appID int) (*model.AppDetails, bool, error) {
		fetches++
		return nil, false, nil
	})

	require.NoError(t, err)
	assert.False(t, live)
	assert.Equal(t, "Dota 2", d.Name)
	assert.Zero(t, fetches)
}

func TestLookup_MissFetchesAndStores(t *testing.T) {
	s := NewStore()

	d, live, err := s.Lookup(context.Background(), 730, func(ctx context.Context, appID int) (*model.AppDetails, bool, error) {
		return &model.AppDetails{AppID: appID, Name: "Counter-Strike 2"}, true, nil
	})

	require.NoError(t, err)
	assert.True(t, live)
	assert.Equal(t, "Counter-Strike 2", d.Name)

	stored, ok := s.Get(730)
	require.True(t, ok)
	assert.Equal(t, d, stored)
	assert.Equal(t, 1, s.Len())
}

func TestLookup_FailedFetchIsNotCached(t *testing.T) {
	s := NewStore()
	wantErr := errors.New("boom")

	_, live, err := s.Lookup(context.Background(), 440, func(ctx context.Context, appID int) (*model.AppDetails, bool, error) {
		return nil, false, wantErr
	})

	assert.True(t, live)
	assert.ErrorIs(t, err, wantErr)
	assert.Zero(t, s.Len())

	// next lookup fetches again
	fetches := 0
	_, _, err = s.Lookup(context.Background(), 440, func(ctx context.Context, appID int) (*model.AppDetails, bool, error) {
		fetches++
		return &model.AppDetails{AppID: appID}, true, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, fetches)
	assert.Equal(t, 1, s.Len())
}

func TestLookup_ParseMissIsNotCached(t *testing.T) {
	s := NewStore()

	d, live, err := s.Lookup(context.Background(), 10, func(ctx context.Context, appID int) (*model.AppDetails, bool, error) {
		return nil, false, nil
	})

	require.NoError(t, err)
	assert.True(t, live)
	assert.Nil(t, d)
	assert.Zero(t, s.Len())
}
