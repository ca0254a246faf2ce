// Copyright 2026 The COMPEL-O-METER authors
//   This file is part of COMPEL-O-METER.
//
//  COMPEL-O-METER is free software: you can redistribute it and/or modify
//  it under the terms of the GNU General Public License as published by
//  the Free Software Foundation, either version 3 of the License, or
//  (at your option) any later version.
//
//  COMPEL-O-METER is distributed in the hope that it will be useful,
//  but WITHOUT ANY WARRANTY; without even the implied warranty of
//  MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//  GNU General Public License for more details.
//
//  You should have received a copy of the GNU General Public License
//  along with COMPEL-O-METER.  If not, see <https://www.gnu.org/licenses/>.

package lexicon

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteStore(t *testing.T) *SQLiteStore {
	s, err := OpenSQLiteStore(filepath.Join(t.TempDir(), "lexicon.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func newRedisStore(t *testing.T) *RedisStore {
	srv := miniredis.RunT(t)
	s := NewRedisStore(redis.NewClient(&redis.Options{Addr: srv.Addr()}), "")
	t.Cleanup(func() { s.Close() })
	return s
}

func forEachBackend(t *testing.T, fn func(t *testing.T, s Store)) {
	t.Run("sqlite", func(t *testing.T) { fn(t, newSQLiteStore(t)) })
	t.Run("redis", func(t *testing.T) { fn(t, newRedisStore(t)) })
}

func TestEntryPolarity(t *testing.T) {
	assert.Equal(t, 0.75, Entry{Word: "x", SentimentSum: 1.5, Observations: 2}.Polarity())
	assert.Equal(t, 0.0, Entry{Word: "x"}.Polarity())
}

func TestEntryValidate(t *testing.T) {
	assert.True(t, errors.Is(Entry{Word: "", Observations: 1}.Validate(), ErrInvalidEntry))
	assert.True(t, errors.Is(Entry{Word: "a", Observations: 0}.Validate(), ErrInvalidEntry))
	assert.NoError(t, Entry{Word: "a", Observations: 1}.Validate())
}

func TestStoreLookupMissing(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		v, found, err := s.Lookup(context.Background(), "congress")
		assert.NoError(t, err)
		assert.False(t, found)
		assert.Equal(t, 0.0, v)
	})
}

func TestStoreRecordAverages(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		require.NoError(t, s.Record(ctx, "Congress", -1))
		require.NoError(t, s.Record(ctx, "congress", 0.5))
		e, found, err := s.Entry(ctx, "congress")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "congress", e.Word)
		assert.Equal(t, -0.5, e.SentimentSum)
		assert.Equal(t, int64(2), e.Observations)
		v, found, err := s.Lookup(ctx, "CONGRESS")
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, -0.25, v)
	})
}

func TestStoreConcurrentRecords(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		require.NoError(t, s.Record(ctx, "people", 1))
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.NoError(t, s.Record(ctx, "people", 0.5))
			}()
		}
		wg.Wait()
		e, found, err := s.Entry(ctx, "people")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, 11.0, e.SentimentSum)
		assert.Equal(t, int64(21), e.Observations)
	})
}

func TestStoreEntriesSorted(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		require.NoError(t, s.Record(ctx, "zebra", 1))
		require.NoError(t, s.Record(ctx, "apple", -1))
		require.NoError(t, s.Merge(ctx, Entry{Word: "mango", SentimentSum: 3, Observations: 2}))
		entries, err := s.Entries(ctx)
		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, "apple", entries[0].Word)
		assert.Equal(t, "mango", entries[1].Word)
		assert.Equal(t, int64(2), entries[1].Observations)
		assert.Equal(t, "zebra", entries[2].Word)
	})
}

func TestStoreRejectsInvalidMerge(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		err := s.Merge(context.Background(), Entry{Word: "x", SentimentSum: 1, Observations: 0})
		assert.True(t, errors.Is(err, ErrInvalidEntry))
		_, found, err := s.Entry(context.Background(), "x")
		assert.NoError(t, err)
		assert.False(t, found)
	})
}

func TestSQLiteStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.db")
	s, err := OpenSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Record(context.Background(), "water", 1))
	require.NoError(t, s.Close())

	s2, err := OpenSQLiteStore(path)
	require.NoError(t, err)
	defer s2.Close()
	v, found, err := s2.Lookup(context.Background(), "water")
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 1.0, v)
}

func TestSnapshot(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()
	require.NoError(t, s.Record(ctx, "congress", -1))
	snap, err := Snapshot(ctx, s, []string{"Congress", "people", "congress"})
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"congress": -1}, snap)
}

func TestExportImport(t *testing.T) {
	ctx := context.Background()
	src := newSQLiteStore(t)
	require.NoError(t, src.Record(ctx, "congress", -1))
	require.NoError(t, src.Record(ctx, "congress", -0.5))
	require.NoError(t, src.Record(ctx, "people", 2))
	var buf bytes.Buffer
	n, err := Export(ctx, src, &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "congress,-1.5,2\npeople,2,1\n", buf.String())

	dst := newRedisStore(t)
	require.NoError(t, dst.Record(ctx, "people", 1))
	n, err = Import(ctx, dst, &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	e, _, err := dst.Entry(ctx, "people")
	require.NoError(t, err)
	assert.Equal(t, 3.0, e.SentimentSum)
	assert.Equal(t, int64(2), e.Observations)
}

func TestImportFloatCounts(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)
	n, err := Import(ctx, s, strings.NewReader("lives,-2.0,2.0\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	v, _, err := s.Lookup(ctx, "lives")
	assert.NoError(t, err)
	assert.Equal(t, -1.0, v)
}

func TestImportInvalidRow(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)
	n, err := Import(ctx, s, strings.NewReader("ok,1,1\nbroken,x\n"))
	assert.Error(t, err)
	assert.Equal(t, 1, n)
	_, found, _ := s.Entry(ctx, "ok")
	assert.True(t, found)
}
