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
	"compelometer/parsetree"
	"strings"
)

var (
	intensifiers = map[string]bool{
		"very":      true,
		"really":    true,
		"extremely": true,
		"quite":     true,
	}

	irregularSuperlatives = map[string]bool{
		"best":  true,
		"worst": true,
		"least": true,
		"most":  true,
	}

	// superlatives regardless of the POS tag
	forcedSuperlatives = map[string]bool{
		"happiest": true,
		"saddest":  true,
	}

	// adjectives ending with `-est` which are not superlatives
	estExceptions = map[string]bool{
		"honest":    true,
		"dishonest": true,
		"modest":    true,
		"immodest":  true,
		"earnest":   true,
		"west":      true,
		"manifest":  true,
		"robust":    true,
		"just":      true,
	}

	adjectiveTags = map[string]bool{
		"ADJ": true,
		"JJ":  true,
		"JJR": true,
		"JJS": true,
	}
)

// IsIntensifier tests for words like `very`, `really`
func IsIntensifier(word string) bool {
	return intensifiers[lexicon.Normalize(word)]
}

// IsSuperlative tests whether a node represents a superlative
// adjective form.
func IsSuperlative(node parsetree.Node) bool {
	w := lexicon.Normalize(node.Word)
	if forcedSuperlatives[w] || node.POS == "JJS" {
		return true
	}
	if !adjectiveTags[node.POS] {
		return false
	}
	if irregularSuperlatives[w] {
		return true
	}
	return len(w) > 4 && strings.HasSuffix(w, "est") && !estExceptions[w]
}

// widen changes ±1 to ±2, other values are kept
func widen(t *parsetree.Tree, id parsetree.NodeID) {
	switch t.Sentiment(id) {
	case 1:
		t.SetSentiment(id, 2)
	case -1:
		t.SetSentiment(id, -2)
	}
}

func assignInitial(t *parsetree.Tree, lx Lexicon) {
	t.Walk(func(id parsetree.NodeID) bool {
		if v := lx.Polarity(t.Node(id).Word); v != 0 {
			t.SetSentiment(id, v)
		}
		return true
	})
}

// propagateNegations handles each negated head once. A negated
// head with own sentiment is flipped, otherwise the sentiment
// bearing words right next to the negation are flipped.
func propagateNegations(t *parsetree.Tree) {
	for _, parent := range t.ParentsOfDep(parsetree.DepNeg) {
		if t.Sentiment(parent) != 0 {
			t.SetSentiment(parent, -t.Sentiment(parent))
			continue
		}
		for _, sib := range t.RightSiblingsOf(parent, parsetree.DepNeg) {
			if v := t.Sentiment(sib); v != 0 {
				t.SetSentiment(sib, -v)
			}
		}
	}
}

func propagateSuperlatives(t *parsetree.Tree) {
	t.Walk(func(id parsetree.NodeID) bool {
		if IsSuperlative(t.Node(id)) {
			widen(t, id)
		}
		return true
	})
}

func propagateIntensifiers(t *parsetree.Tree) {
	var found bool
	t.Walk(func(id parsetree.NodeID) bool {
		found = IsIntensifier(t.Node(id).Word)
		return !found
	})
	if !found {
		return
	}
	for _, parent := range t.ParentsOfDep(parsetree.DepAdvmod) {
		widen(t, parent)
	}
}

// Propagate runs all the sentiment passes on a tree. Any previous
// sentiment values are discarded.
func Propagate(t *parsetree.Tree, lx Lexicon) {
	if t.IsEmpty() {
		return
	}
	t.ResetSentiment()
	assignInitial(t, lx)
	propagateNegations(t)
	propagateSuperlatives(t)
	propagateIntensifiers(t)
}
