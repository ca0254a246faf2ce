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
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

const (
	sqliteSchema = `CREATE TABLE IF NOT EXISTS adaptive_lexicon (
		word TEXT PRIMARY KEY,
		sentiment_sum REAL NOT NULL,
		observations INTEGER NOT NULL CHECK (observations >= 1)
	)`

	sqliteUpsert = `INSERT INTO adaptive_lexicon (word, sentiment_sum, observations)
		VALUES (?, ?, ?)
		ON CONFLICT(word) DO UPDATE SET
			sentiment_sum = sentiment_sum + excluded.sentiment_sum,
			observations = observations + excluded.observations`
)

// SQLiteStore is an adaptive lexicon stored in a SQLite
// database. Each update runs in its own transaction and
// all the updates are serialized.
type SQLiteStore struct {
	db        *sql.DB
	writeLock sync.Mutex
	Path      string
}

func (s *SQLiteStore) Lookup(ctx context.Context, word string) (float64, bool, error) {
	e, found, err := s.Entry(ctx, word)
	if err != nil || !found {
		return 0, found, err
	}
	return e.Polarity(), true, nil
}

func (s *SQLiteStore) Entry(ctx context.Context, word string) (Entry, bool, error) {
	ans := Entry{Word: Normalize(word)}
	row := s.db.QueryRowContext(
		ctx,
		"SELECT sentiment_sum, observations FROM adaptive_lexicon WHERE word = ?",
		ans.Word,
	)
	err := row.Scan(&ans.SentimentSum, &ans.Observations)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil

	} else if err != nil {
		return Entry{}, false, fmt.Errorf("failed to read lexicon entry `%s`: %w", ans.Word, err)
	}
	return ans, true, nil
}

func (s *SQLiteStore) Entries(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(
		ctx,
		"SELECT word, sentiment_sum, observations FROM adaptive_lexicon ORDER BY word",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to read lexicon entries: %w", err)
	}
	defer rows.Close()
	ans := make([]Entry, 0, 100)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Word, &e.SentimentSum, &e.Observations); err != nil {
			return nil, fmt.Errorf("failed to read lexicon entries: %w", err)
		}
		ans = append(ans, e)
	}
	return ans, rows.Err()
}

func (s *SQLiteStore) Record(ctx context.Context, word string, contribution float64) error {
	return s.Merge(ctx, Entry{Word: Normalize(word), SentimentSum: contribution, Observations: 1})
}

func (s *SQLiteStore) Merge(ctx context.Context, entry Entry) error {
	entry.Word = Normalize(entry.Word)
	if err := entry.Validate(); err != nil {
		return err
	}
	s.writeLock.Lock()
	defer s.writeLock.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start lexicon transaction: %w", err)
	}
	if _, err := tx.ExecContext(
		ctx, sqliteUpsert, entry.Word, entry.SentimentSum, entry.Observations); err != nil {
		if err2 := tx.Rollback(); err2 != nil {
			log.Error().Err(err2).Str("word", entry.Word).Msg("failed to rollback lexicon update")
		}
		return fmt.Errorf("failed to update lexicon entry `%s`: %w", entry.Word, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit lexicon entry `%s`: %w", entry.Word, err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// OpenSQLiteStore opens (and if needed initializes) a lexicon
// database. The special path `:memory:` creates an in-memory store.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening lexicon database: %w", err)
	}
	// one connection serializes access and keeps :memory: databases alive
	conn.SetMaxOpenConns(1)
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=FULL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := conn.Exec(p); err != nil {
			conn.Close()
			return nil, fmt.Errorf("setting up lexicon database (%s): %w", p, err)
		}
	}
	if _, err := conn.Exec(sqliteSchema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("creating lexicon schema: %w", err)
	}
	log.Info().Str("path", path).Msg("opened SQLite adaptive lexicon")
	return &SQLiteStore{db: conn, Path: path}, nil
}
