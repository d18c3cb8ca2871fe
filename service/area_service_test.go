package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"ihome/internal/cache"
	"ihome/model"

	"github.com/stretchr/testify/require"
)

type fakeAreaStore struct {
	areas []model.Area
	err   error
	calls int
}

func (f *fakeAreaStore) ListAll() ([]model.Area, error) {
	f.calls++
	return f.areas, f.err
}

func TestListJSONCacheHitSkipsStore(t *testing.T) {
	c := newFakeCache()
	c.data[cache.AreaInfoKey] = `[{"aid":1,"aname":"东城区"}]`
	store := &fakeAreaStore{}
	svc := NewAreaService(store, c)

	blob, err := svc.ListJSON(context.Background())
	require.NoError(t, err)
	require.Equal(t, `[{"aid":1,"aname":"东城区"}]`, blob)
	require.Zero(t, store.calls)
}

func TestListJSONMissPopulatesCache(t *testing.T) {
	c := newFakeCache()
	store := &fakeAreaStore{areas: []model.Area{{ID: 1, Name: "东城区"}, {ID: 2, Name: "西城区"}}}
	svc := NewAreaService(store, c)

	blob, err := svc.ListJSON(context.Background())
	require.NoError(t, err)

	var got []model.Area
	require.NoError(t, json.Unmarshal([]byte(blob), &got))
	require.Equal(t, store.areas, got)
	require.Equal(t, blob, c.data[cache.AreaInfoKey])
}

func TestListJSONEmptyStoreIsNoData(t *testing.T) {
	svc := NewAreaService(&fakeAreaStore{}, newFakeCache())
	_, err := svc.ListJSON(context.Background())
	require.ErrorIs(t, err, ErrNoData)
}

func TestListJSONCacheWriteFailureIsSwallowed(t *testing.T) {
	c := newFakeCache()
	c.setErr = errors.New("redis down")
	store := &fakeAreaStore{areas: []model.Area{{ID: 1, Name: "东城区"}}}
	svc := NewAreaService(store, c)

	// 缓存回写失败不影响本次响应
	blob, err := svc.ListJSON(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, blob)
}

func TestListJSONCacheReadFailureFallsBack(t *testing.T) {
	c := newFakeCache()
	c.getErr = errors.New("redis down")
	store := &fakeAreaStore{areas: []model.Area{{ID: 1, Name: "东城区"}}}
	svc := NewAreaService(store, c)

	_, err := svc.ListJSON(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, store.calls)
}

func TestListJSONStoreFailure(t *testing.T) {
	store := &fakeAreaStore{err: errors.New("mysql gone")}
	svc := NewAreaService(store, newFakeCache())
	_, err := svc.ListJSON(context.Background())
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrNoData))
}
