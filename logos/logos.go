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

// Package logos estimates how much a text relies on reasoning
// and evidence (numbers, statistics).
package logos

import (
	"compelometer/lexicon"
	"math"
	"regexp"
	"strings"
	"unicode"
)

const (
	reasoningBase = 0.5
	maxNumeralAvg = 0.5
)

var (
	sentenceSep = regexp.MustCompile(`[!?.]+`)

	// spelled number stems (e.g. `twent` matches twenty, twentieth)
	numeralRoots = []string{
		"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
		"ten", "twent", "thirt", "forti", "forty", "fifti", "fifty",
		"twel", "fourt", "fift",
		"hundred", "thousand", "million", "billion", "trillion",
	}
)

type Config struct {

	// Unclamped disables the upper limit of the numeral
	// contribution so logos can exceed 1.0
	Unclamped bool `json:"unclamped"`
}

// SplitSentences splits text on runs of sentence-ending
// punctuation. Empty fragments are removed.
func SplitSentences(text string) []string {
	parts := sentenceSep.Split(text, -1)
	ans := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			ans = append(ans, v)
		}
	}
	return ans
}

// IsNumeral tests whether a token is (or contains) a number.
// Spelled numbers are matched by their stems anywhere in the token.
func IsNumeral(token string) bool {
	if strings.IndexFunc(token, unicode.IsDigit) >= 0 {
		return true
	}
	lc := strings.ToLower(token)
	for _, root := range numeralRoots {
		if strings.Contains(lc, root) {
			return true
		}
	}
	return false
}

func CountNumerals(sentence string) int {
	var ans int
	for _, tok := range strings.Fields(sentence) {
		if IsNumeral(tok) {
			ans++
		}
	}
	return ans
}

type Estimator struct {
	cues *lexicon.Cues
	conf Config
}

// IsReasoning tests whether the text contains any reasoning cue
func (e *Estimator) IsReasoning(text string) bool {
	return e.cues.Matches(text)
}

// Score returns 0 for texts without reasoning. Otherwise the score
// is 0.5 plus the average number of numerals per sentence
// (limited to 0.5 unless configured otherwise).
func (e *Estimator) Score(text string) float64 {
	if !e.IsReasoning(text) {
		return 0
	}
	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return reasoningBase
	}
	var total int
	for _, s := range sentences {
		total += CountNumerals(s)
	}
	avg := float64(total) / float64(len(sentences))
	if e.conf.Unclamped {
		return reasoningBase + avg
	}
	return reasoningBase + math.Min(avg, maxNumeralAvg)
}

func NewEstimator(cues *lexicon.Cues, conf Config) *Estimator {
	return &Estimator{cues: cues, conf: conf}
}
