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
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
)

var (
	ErrInvalidEntry = errors.New("invalid lexicon entry")
)

// Entry is a learned sentiment of a word. The polarity
// of the word is the average of all the observed contributions.
type Entry struct {
	Word         string  `json:"word"`
	SentimentSum float64 `json:"sentimentSum"`
	Observations int64   `json:"observations"`
}

func (e Entry) Polarity() float64 {
	if e.Observations == 0 {
		return 0
	}
	return e.SentimentSum / float64(e.Observations)
}

func (e Entry) Validate() error {
	if e.Word == "" {
		return fmt.Errorf("%w: empty word", ErrInvalidEntry)
	}
	if e.Observations < 1 {
		return fmt.Errorf("%w: `%s` has non-positive observation count", ErrInvalidEntry, e.Word)
	}
	return nil
}

// Store is a persistent adaptive lexicon. Implementations
// must be safe for concurrent use and must not lose any
// concurrent Record/Merge calls for the same word.
type Store interface {

	// Lookup returns the average sentiment of a word.
	// For a word never recorded, found is false.
	Lookup(ctx context.Context, word string) (polarity float64, found bool, err error)

	Entry(ctx context.Context, word string) (Entry, bool, error)

	// Entries returns all entries sorted by word
	Entries(ctx context.Context) ([]Entry, error)

	// Record adds a single observation of the word. The change
	// is durable once the method returns without error.
	Record(ctx context.Context, word string, contribution float64) error

	// Merge adds a whole entry (sum and count) to an existing one
	// or creates a new entry.
	Merge(ctx context.Context, entry Entry) error

	Close() error
}

// Snapshot reads current polarities of provided words. Words
// not present in the store are omitted.
func Snapshot(ctx context.Context, store Store, words []string) (map[string]float64, error) {
	ans := make(map[string]float64, len(words))
	for _, w := range words {
		w = Normalize(w)
		if _, done := ans[w]; done {
			continue
		}
		v, found, err := store.Lookup(ctx, w)
		if err != nil {
			return nil, fmt.Errorf("failed to create lexicon snapshot: %w", err)
		}
		if found {
			ans[w] = v
		}
	}
	return ans, nil
}

// Export writes all entries as `word,sum,count` CSV rows
func Export(ctx context.Context, store Store, w io.Writer) (int, error) {
	entries, err := store.Entries(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to export lexicon: %w", err)
	}
	cw := csv.NewWriter(w)
	for _, e := range entries {
		err := cw.Write([]string{
			e.Word,
			strconv.FormatFloat(e.SentimentSum, 'f', -1, 64),
			strconv.FormatInt(e.Observations, 10),
		})
		if err != nil {
			return 0, fmt.Errorf("failed to export lexicon: %w", err)
		}
	}
	cw.Flush()
	return len(entries), cw.Error()
}

func parseEntryRow(row []string) (Entry, error) {
	if len(row) < 3 {
		return Entry{}, fmt.Errorf("%w: expected 3 columns, got %d", ErrInvalidEntry, len(row))
	}
	sum, err := strconv.ParseFloat(row[1], 64)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %s", ErrInvalidEntry, err)
	}
	// older files store counts as floats (e.g. `2.0`)
	cnt, err := strconv.ParseFloat(row[2], 64)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %s", ErrInvalidEntry, err)
	}
	ans := Entry{Word: Normalize(row[0]), SentimentSum: sum, Observations: int64(cnt)}
	return ans, ans.Validate()
}

// Import merges `word,sum,count` CSV rows into the store.
// Invalid rows stop the import, already merged rows are kept.
func Import(ctx context.Context, store Store, r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	var n int
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break

		} else if err != nil {
			return n, fmt.Errorf("failed to import lexicon: %w", err)
		}
		entry, err := parseEntryRow(row)
		if err != nil {
			return n, fmt.Errorf("failed to import lexicon row %d: %w", n+1, err)
		}
		if err := store.Merge(ctx, entry); err != nil {
			return n, fmt.Errorf("failed to import lexicon: %w", err)
		}
		n++
	}
	return n, nil
}
