package replay

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	engine "github.com/brianberns/hearts/engine"
)

func openTestStore(t *testing.T) *SQLStore {
	t.Helper()
	log, _ := test.NewNullLogger()
	dsn := "file:" + filepath.Join(t.TempDir(), "records.db")
	s, err := OpenSQLStore(context.Background(), DriverSQLite, dsn, log)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return s
}

func TestSQLStoreSaveLoad(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	r := recordDeal(t, 3, engine.South, engine.Left)

	require.NoError(t, s.Save(ctx, r))
	got, err := s.Load(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, r, got)

	_, err = s.Load(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrRecordNotFound)

	assert.Error(t, s.Save(ctx, r), "duplicate id")
}

func TestSQLStoreListOrder(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	var ids []uuid.UUID
	for seed := uint64(1); seed <= 4; seed++ {
		r := recordDeal(t, seed, engine.Seat(seed%4), engine.DirectionForDeal(int(seed)))
		require.NoError(t, s.Save(ctx, r))
		ids = append(ids, r.ID)
	}

	all, err := s.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, all, 4)
	for i, r := range all {
		assert.Equal(t, ids[i], r.ID)
	}

	some, err := s.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, some, 2)
}

func TestSQLStoreRejectsMalformed(t *testing.T) {
	s := openTestStore(t)
	r := recordDeal(t, 2, engine.West, engine.Hold)
	r.Score = engine.Score{}
	assert.ErrorIs(t, s.Save(context.Background(), r), ErrMalformedRecord)

	_, err := s.db.Exec(`insert into `+tableName+` values ('x', '0', 'West', 'Hold', 0, 0, 0, 0, '{"plays":[]}')`)
	require.NoError(t, err)
	_, err = s.List(context.Background(), 10)
	assert.ErrorIs(t, err, ErrMalformedRecord)
}

func TestRebind(t *testing.T) {
	pg := NewSQLStore(nil, DriverPostgres, nil)
	assert.Equal(t, "select * from t where a = $1 and b = $2", pg.rebind("select * from t where a = ? and b = ?"))

	lite := NewSQLStore(nil, DriverSQLite, nil)
	assert.Equal(t, "a = ?", lite.rebind("a = ?"))
}
