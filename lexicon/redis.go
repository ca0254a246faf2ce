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
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultRedisKeyPrefix = "compelometer:lexicon"

	redisFieldSum   = "sum"
	redisFieldCount = "count"
)

// RedisStore keeps each word as a hash with `sum` and `count`
// fields. Both fields are incremented within a single MULTI/EXEC
// block so concurrent updates (even from different processes)
// are never lost. Durability depends on the Redis server
// persistence setup (AOF with `appendfsync always`).
type RedisStore struct {
	c      redis.UniversalClient
	prefix string
}

func (s *RedisStore) key(word string) string {
	return fmt.Sprintf("%s:%s", s.prefix, word)
}

func (s *RedisStore) Lookup(ctx context.Context, word string) (float64, bool, error) {
	e, found, err := s.Entry(ctx, word)
	if err != nil || !found {
		return 0, found, err
	}
	return e.Polarity(), true, nil
}

func (s *RedisStore) Entry(ctx context.Context, word string) (Entry, bool, error) {
	w := Normalize(word)
	vals, err := s.c.HMGet(ctx, s.key(w), redisFieldSum, redisFieldCount).Result()
	if err != nil {
		return Entry{}, false, fmt.Errorf("failed to read lexicon entry `%s`: %w", w, err)
	}
	if len(vals) < 2 || vals[0] == nil || vals[1] == nil {
		return Entry{}, false, nil
	}
	return parseRedisEntry(w, vals[0], vals[1])
}

func parseRedisEntry(word string, rawSum, rawCount any) (Entry, bool, error) {
	sSum, ok1 := rawSum.(string)
	sCount, ok2 := rawCount.(string)
	if !ok1 || !ok2 {
		return Entry{}, false, fmt.Errorf("%w: unexpected Redis value types for `%s`", ErrInvalidEntry, word)
	}
	sum, err := strconv.ParseFloat(sSum, 64)
	if err != nil {
		return Entry{}, false, fmt.Errorf("%w: %s", ErrInvalidEntry, err)
	}
	cnt, err := strconv.ParseInt(sCount, 10, 64)
	if err != nil {
		return Entry{}, false, fmt.Errorf("%w: %s", ErrInvalidEntry, err)
	}
	return Entry{Word: word, SentimentSum: sum, Observations: cnt}, true, nil
}

func (s *RedisStore) Entries(ctx context.Context) ([]Entry, error) {
	ans := make([]Entry, 0, 100)
	iter := s.c.Scan(ctx, 0, s.prefix+":*", 500).Iterator()
	for iter.Next(ctx) {
		word := strings.TrimPrefix(iter.Val(), s.prefix+":")
		e, found, err := s.Entry(ctx, word)
		if err != nil {
			return nil, err
		}
		if found {
			ans = append(ans, e)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan lexicon entries: %w", err)
	}
	sort.Slice(ans, func(i, j int) bool { return ans[i].Word < ans[j].Word })
	return ans, nil
}

func (s *RedisStore) Record(ctx context.Context, word string, contribution float64) error {
	return s.Merge(ctx, Entry{Word: word, SentimentSum: contribution, Observations: 1})
}

func (s *RedisStore) Merge(ctx context.Context, entry Entry) error {
	entry.Word = Normalize(entry.Word)
	if err := entry.Validate(); err != nil {
		return err
	}
	key := s.key(entry.Word)
	_, err := s.c.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HIncrByFloat(ctx, key, redisFieldSum, entry.SentimentSum)
		pipe.HIncrBy(ctx, key, redisFieldCount, entry.Observations)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to update lexicon entry `%s`: %w", entry.Word, err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	err := s.c.Close()
	if errors.Is(err, redis.ErrClosed) {
		return nil
	}
	return err
}

// NewRedisStore creates a Redis based adaptive lexicon. An empty
// prefix is replaced by DefaultRedisKeyPrefix.
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultRedisKeyPrefix
	}
	return &RedisStore{c: client, prefix: prefix}
}
