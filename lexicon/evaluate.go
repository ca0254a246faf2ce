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
	"fmt"
	"math"

	"github.com/jonreiter/govader"
	"gonum.org/v1/gonum/stat"
)

// ReferenceScorer provides a reference sentiment of a word
// in the [-1, 1] range.
type ReferenceScorer interface {
	Score(word string) float64
}

// VaderReference scores words using the VADER compound score
type VaderReference struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func (v *VaderReference) Score(word string) float64 {
	return v.analyzer.PolarityScores(word).Compound
}

func NewVaderReference() *VaderReference {
	return &VaderReference{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// ----

type WordError struct {
	Word      string  `json:"word"`
	Learned   float64 `json:"learned"`
	Reference float64 `json:"reference"`
	AbsError  float64 `json:"absError"`
}

type Evaluation struct {
	NumWords int `json:"numWords"`

	// MAE is a mean absolute error between the learned polarities
	// (scaled to [-1, 1]) and the reference scores
	MAE   float64     `json:"mae"`
	Words []WordError `json:"words,omitempty"`
}

// Evaluate compares learned word polarities with a reference
// sentiment scorer. As the learned values are within [-2, 2],
// they are halved first.
func Evaluate(ctx context.Context, store Store, ref ReferenceScorer) (Evaluation, error) {
	entries, err := store.Entries(ctx)
	if err != nil {
		return Evaluation{}, fmt.Errorf("failed to evaluate lexicon: %w", err)
	}
	ans := Evaluation{
		NumWords: len(entries),
		Words:    make([]WordError, len(entries)),
	}
	if len(entries) == 0 {
		return ans, nil
	}
	errs := make([]float64, len(entries))
	for i, e := range entries {
		learned := e.Polarity() / 2
		rs := ref.Score(e.Word)
		errs[i] = math.Abs(learned - rs)
		ans.Words[i] = WordError{
			Word:      e.Word,
			Learned:   learned,
			Reference: rs,
			AbsError:  errs[i],
		}
	}
	ans.MAE = stat.Mean(errs, nil)
	return ans, nil
}
