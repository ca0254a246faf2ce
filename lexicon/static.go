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
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var (
	//go:embed data/positive-words.txt
	defaultPositiveWords []byte

	//go:embed data/negative-words.txt
	defaultNegativeWords []byte

	//go:embed data/reasoning-cues.txt
	defaultReasoningCues []byte
)

// Normalize converts a word to the form used as a lexicon key
func Normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// readWordList reads first columns of a CSV-like list. Lines starting
// with ';' are treated as comments, empty lines are ignored.
func readWordList(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.Comment = ';'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	ans := make([]string, 0, 1000)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break

		} else if err != nil {
			return nil, fmt.Errorf("failed to read word list: %w", err)
		}
		if len(row) == 0 {
			continue
		}
		w := Normalize(row[0])
		if w != "" {
			ans = append(ans, w)
		}
	}
	return ans, nil
}

func openListOrDefault(path string, dflt []byte) (io.ReadCloser, error) {
	if path == "" {
		return io.NopCloser(bytes.NewReader(dflt)), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open word list %s: %w", path, err)
	}
	return f, nil
}

// ----------------------------------

// Static is an immutable word => polarity mapping created
// from curated lists of positive and negative words.
type Static struct {
	words map[string]int
}

// Polarity returns 1 for positive words, -1 for negative words
// and 0 for words not present in the lexicon.
func (s *Static) Polarity(word string) int {
	return s.words[Normalize(word)]
}

func (s *Static) Has(word string) bool {
	_, ok := s.words[Normalize(word)]
	return ok
}

func (s *Static) Len() int {
	return len(s.words)
}

// NewStatic creates a static lexicon out of two word lists.
// In case a word is present in both lists, the negative
// polarity wins.
func NewStatic(positive, negative io.Reader) (*Static, error) {
	pos, err := readWordList(positive)
	if err != nil {
		return nil, fmt.Errorf("failed to load positive words: %w", err)
	}
	neg, err := readWordList(negative)
	if err != nil {
		return nil, fmt.Errorf("failed to load negative words: %w", err)
	}
	ans := &Static{words: make(map[string]int, len(pos)+len(neg))}
	for _, w := range pos {
		ans.words[w] = 1
	}
	for _, w := range neg {
		ans.words[w] = -1
	}
	return ans, nil
}

// LoadStatic loads the lexicon from files. Empty paths
// are replaced by the built-in lists.
func LoadStatic(positivePath, negativePath string) (*Static, error) {
	pf, err := openListOrDefault(positivePath, defaultPositiveWords)
	if err != nil {
		return nil, err
	}
	defer pf.Close()
	nf, err := openListOrDefault(negativePath, defaultNegativeWords)
	if err != nil {
		return nil, err
	}
	defer nf.Close()
	return NewStatic(pf, nf)
}

// DefaultStatic returns a lexicon based on the built-in word lists
func DefaultStatic() *Static {
	ans, err := NewStatic(
		bytes.NewReader(defaultPositiveWords), bytes.NewReader(defaultNegativeWords))
	if err != nil {
		panic(fmt.Sprintf("invalid built-in word lists: %s", err))
	}
	return ans
}

// ----------------------------------

// Cues is a list of words and phrases signaling
// reasoning (e.g. "because", "as a result").
type Cues struct {
	phrases []string
}

// Matches tests whether the text contains any of the cues
// (case-insensitive substring search).
func (c *Cues) Matches(text string) bool {
	lc := strings.ToLower(text)
	for _, p := range c.phrases {
		if strings.Contains(lc, p) {
			return true
		}
	}
	return false
}

func (c *Cues) Phrases() []string {
	return c.phrases
}

func NewCues(phrases ...string) *Cues {
	ans := &Cues{phrases: make([]string, 0, len(phrases))}
	for _, p := range phrases {
		if v := Normalize(p); v != "" {
			ans.phrases = append(ans.phrases, v)
		}
	}
	return ans
}

// LoadCues loads reasoning cues from a file. For an empty
// path, the built-in list is used.
func LoadCues(path string) (*Cues, error) {
	f, err := openListOrDefault(path, defaultReasoningCues)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	phrases, err := readWordList(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load reasoning cues: %w", err)
	}
	return &Cues{phrases: phrases}, nil
}

func DefaultCues() *Cues {
	ans, err := LoadCues("")
	if err != nil {
		panic(fmt.Sprintf("invalid built-in reasoning cues: %s", err))
	}
	return ans
}
