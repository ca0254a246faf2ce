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
	"compelometer/lexicon"
)

// Lexicon provides initial sentiment of words
type Lexicon interface {
	Polarity(word string) float64
}

// StaticLexicon uses only curated word lists
type StaticLexicon struct {
	static *lexicon.Static
}

func (lx StaticLexicon) Polarity(word string) float64 {
	return float64(lx.static.Polarity(word))
}

func NewStaticLexicon(static *lexicon.Static) StaticLexicon {
	return StaticLexicon{static: static}
}

// AdaptiveLexicon combines the static lexicon with a snapshot
// of learned polarities. Static entries always win.
type AdaptiveLexicon struct {
	static   *lexicon.Static
	snapshot map[string]float64
}

func (lx AdaptiveLexicon) Polarity(word string) float64 {
	if v := lx.static.Polarity(word); v != 0 {
		return float64(v)
	}
	return lx.snapshot[lexicon.Normalize(word)]
}

func NewAdaptiveLexicon(static *lexicon.Static, snapshot map[string]float64) AdaptiveLexicon {
	return AdaptiveLexicon{static: static, snapshot: snapshot}
}
