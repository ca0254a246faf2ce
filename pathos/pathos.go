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

package pathos

import (
	"compelometer/parsetree"
	"math"
)

// TreeScore is a pathos of a single dependency tree
type TreeScore struct {
	Pathos float64 `json:"pathos"`

	// Bearers is the number of nodes with nonzero sentiment
	Bearers int `json:"bearers"`

	Negative bool `json:"negative"`
}

// Score is an aggregated pathos of a whole text
type Score struct {
	Pathos          float64     `json:"pathos"`
	NegativePresent bool        `json:"negativePresent"`
	Trees           []TreeScore `json:"trees,omitempty"`
}

// ScoreTree propagates sentiment in the tree and returns
// the mean absolute sentiment of its sentiment bearing nodes.
func ScoreTree(t *parsetree.Tree, lx Lexicon) TreeScore {
	var ans TreeScore
	if t.IsEmpty() {
		return ans
	}
	Propagate(t, lx)
	var total float64
	t.Walk(func(id parsetree.NodeID) bool {
		s := t.Sentiment(id)
		if s != 0 {
			total += math.Abs(s)
			ans.Bearers++
		}
		if s < 0 {
			ans.Negative = true
		}
		return true
	})
	ans.Pathos = total / float64(max(ans.Bearers, 1))
	return ans
}

// ScoreTrees computes the mean of tree pathos values.
// With no trees, the pathos is zero.
func ScoreTrees(trees []*parsetree.Tree, lx Lexicon) Score {
	ans := Score{Trees: make([]TreeScore, 0, len(trees))}
	if len(trees) == 0 {
		return ans
	}
	var total float64
	for _, t := range trees {
		ts := ScoreTree(t, lx)
		total += ts.Pathos
		ans.NegativePresent = ans.NegativePresent || ts.Negative
		ans.Trees = append(ans.Trees, ts)
	}
	ans.Pathos = total / float64(len(trees))
	return ans
}
