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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ann(word, dep, head, pos string, children ...string) parsetree.Annotation {
	return parsetree.Annotation{
		Node:     parsetree.Node{Word: word, Dep: dep, Head: head, POS: pos},
		Children: children,
	}
}

func build(t *testing.T, clause ...parsetree.Annotation) *parsetree.Tree {
	trees, errs := parsetree.Build(clause)
	require.Empty(t, errs)
	require.Len(t, trees, 1)
	return trees[0]
}

func staticLex() StaticLexicon {
	return NewStaticLexicon(lexicon.DefaultStatic())
}

func sentimentOf(t *parsetree.Tree, word string) float64 {
	var ans float64
	t.Walk(func(id parsetree.NodeID) bool {
		if t.Node(id).Word == word {
			ans = t.Sentiment(id)
			return false
		}
		return true
	})
	return ans
}

func iAmHappy(t *testing.T) *parsetree.Tree {
	return build(t,
		ann("i", "nsubj", "am", "PRON"),
		ann("am", "ROOT", "am", "AUX", "i", "happy"),
		ann("happy", "acomp", "am", "ADJ"),
	)
}

func TestScoreTreeNoSentiment(t *testing.T) {
	tree := build(t,
		ann("i", "nsubj", "ate", "PRON"),
		ann("ate", "ROOT", "ate", "VERB", "i", "pizza"),
		ann("pizza", "dobj", "ate", "NOUN"),
	)
	ts := ScoreTree(tree, staticLex())
	assert.Equal(t, TreeScore{}, ts)
}

func TestScoreTreeSinglePositive(t *testing.T) {
	ts := ScoreTree(iAmHappy(t), staticLex())
	assert.Equal(t, 1.0, ts.Pathos)
	assert.Equal(t, 1, ts.Bearers)
	assert.False(t, ts.Negative)
}

func TestNegationOfSibling(t *testing.T) {
	tree := build(t,
		ann("it", "nsubj", "is", "PRON"),
		ann("is", "ROOT", "is", "AUX", "it", "not", "good"),
		ann("not", "neg", "is", "PART"),
		ann("good", "acomp", "is", "ADJ"),
	)
	ts := ScoreTree(tree, staticLex())
	assert.Equal(t, -1.0, sentimentOf(tree, "good"))
	assert.Equal(t, 1.0, ts.Pathos)
	assert.True(t, ts.Negative)
}

func TestNegationOfHead(t *testing.T) {
	tree := build(t,
		ann("i", "nsubj", "like", "PRON"),
		ann("do", "aux", "like", "AUX"),
		ann("like", "ROOT", "like", "VERB", "i", "do", "not", "it"),
		ann("not", "neg", "like", "PART"),
		ann("it", "dobj", "like", "PRON"),
	)
	ScoreTree(tree, staticLex())
	assert.Equal(t, -1.0, sentimentOf(tree, "like"))
}

func TestNegationBothLevels(t *testing.T) {
	tree := build(t,
		ann("water", "nsubj", "is", "NOUN"),
		ann("is", "ROOT", "is", "AUX", "water", "n't", "good"),
		ann("n't", "neg", "is", "PART"),
		ann("good", "acomp", "is", "ADJ", "for"),
		ann("for", "prep", "good", "ADP", "people"),
		ann("people", "pobj", "for", "NOUN", "are"),
		ann("who", "nsubj", "are", "PRON"),
		ann("are", "relcl", "people", "AUX", "who", "n't", "good"),
		ann("n't", "neg", "are", "PART"),
		ann("good", "acomp", "are", "ADJ"),
	)
	ts := ScoreTree(tree, staticLex())
	assert.Equal(t, 2, ts.Bearers)
	assert.Equal(t, 1.0, ts.Pathos)
	assert.True(t, ts.Negative)
	for _, id := range tree.NodesWithPOS("ADJ") {
		assert.Equal(t, -1.0, tree.Sentiment(id))
	}
}

func TestNegationAsLastChildIgnored(t *testing.T) {
	tree := build(t,
		ann("good", "ROOT", "good", "ADJ", "not"),
		ann("not", "neg", "good", "PART"),
	)
	// the head itself has sentiment so it gets negated
	ScoreTree(tree, staticLex())
	assert.Equal(t, -1.0, sentimentOf(tree, "good"))

	tree2 := build(t,
		ann("is", "ROOT", "is", "AUX", "good", "not"),
		ann("good", "acomp", "is", "ADJ"),
		ann("not", "neg", "is", "PART"),
	)
	ScoreTree(tree2, staticLex())
	assert.Equal(t, 1.0, sentimentOf(tree2, "good"))
}

func TestSuperlatives(t *testing.T) {
	tree := build(t,
		ann("she", "nsubj", "is", "PRON"),
		ann("is", "ROOT", "is", "AUX", "she", "happiest"),
		ann("happiest", "acomp", "is", "ADJ"),
	)
	ts := ScoreTree(tree, staticLex())
	assert.Equal(t, 2.0, ts.Pathos)

	tree2 := build(t,
		ann("day", "ROOT", "day", "NOUN", "the", "worst"),
		ann("the", "det", "day", "DET"),
		ann("worst", "amod", "day", "JJS"),
	)
	ts = ScoreTree(tree2, staticLex())
	assert.Equal(t, 2.0, ts.Pathos)
	assert.True(t, ts.Negative)
}

func TestNegatedSuperlative(t *testing.T) {
	tree := build(t,
		ann("it", "nsubj", "is", "PRON"),
		ann("is", "ROOT", "is", "AUX", "it", "not", "best"),
		ann("not", "neg", "is", "PART"),
		ann("best", "acomp", "is", "ADJ"),
	)
	ts := ScoreTree(tree, staticLex())
	assert.Equal(t, -2.0, sentimentOf(tree, "best"))
	assert.Equal(t, 2.0, ts.Pathos)
}

func TestIsSuperlative(t *testing.T) {
	assert.True(t, IsSuperlative(parsetree.Node{Word: "greatest", POS: "ADJ"}))
	assert.True(t, IsSuperlative(parsetree.Node{Word: "saddest", POS: "NOUN"}))
	assert.True(t, IsSuperlative(parsetree.Node{Word: "most", POS: "ADJ"}))
	assert.True(t, IsSuperlative(parsetree.Node{Word: "finest", POS: "JJS"}))
	assert.False(t, IsSuperlative(parsetree.Node{Word: "honest", POS: "ADJ"}))
	assert.False(t, IsSuperlative(parsetree.Node{Word: "modest", POS: "JJ"}))
	assert.False(t, IsSuperlative(parsetree.Node{Word: "greatest", POS: "NOUN"}))
	assert.False(t, IsSuperlative(parsetree.Node{Word: "good", POS: "ADJ"}))
}

func TestIntensifier(t *testing.T) {
	tree := build(t,
		ann("i", "nsubj", "am", "PRON"),
		ann("am", "ROOT", "am", "AUX", "i", "happy"),
		ann("happy", "acomp", "am", "ADJ", "very"),
		ann("very", "advmod", "happy", "ADV"),
	)
	ts := ScoreTree(tree, staticLex())
	assert.Equal(t, 2.0, ts.Pathos)
}

func TestAdvmodWithoutIntensifier(t *testing.T) {
	tree := build(t,
		ann("i", "nsubj", "am", "PRON"),
		ann("am", "ROOT", "am", "AUX", "i", "happy"),
		ann("happy", "acomp", "am", "ADJ", "so"),
		ann("so", "advmod", "happy", "ADV"),
	)
	ts := ScoreTree(tree, staticLex())
	assert.Equal(t, 1.0, ts.Pathos)
}

func TestIntensifiedSuperlativeStaysBounded(t *testing.T) {
	tree := build(t,
		ann("it", "nsubj", "is", "PRON"),
		ann("is", "ROOT", "is", "AUX", "it", "best"),
		ann("best", "acomp", "is", "ADJ", "really"),
		ann("really", "advmod", "best", "ADV"),
	)
	ts := ScoreTree(tree, staticLex())
	assert.Equal(t, 2.0, ts.Pathos)
}

func TestRepeatedScoringIsStable(t *testing.T) {
	tree := iAmHappy(t)
	ScoreTree(tree, staticLex())
	ts := ScoreTree(tree, staticLex())
	assert.Equal(t, 1.0, ts.Pathos)
}

func TestScoreTreesMean(t *testing.T) {
	trees, errs := parsetree.Build([]parsetree.Annotation{
		ann("i", "nsubj", "am", "PRON"),
		ann("am", "ROOT", "am", "AUX", "i", "happy"),
		ann("happy", "acomp", "am", "ADJ"),
		ann("you", "nsubj", "are", "PRON"),
		ann("are", "ROOT", "are", "AUX", "you", "saddest"),
		ann("saddest", "acomp", "are", "ADJ"),
	})
	require.Empty(t, errs)
	score := ScoreTrees(trees, staticLex())
	assert.Equal(t, 1.5, score.Pathos)
	assert.True(t, score.NegativePresent)
	assert.Len(t, score.Trees, 2)
}

func TestScoreTreesEmpty(t *testing.T) {
	score := ScoreTrees(nil, staticLex())
	assert.Equal(t, 0.0, score.Pathos)
	assert.False(t, score.NegativePresent)
}

func TestAdaptiveLexicon(t *testing.T) {
	lx := NewAdaptiveLexicon(
		lexicon.DefaultStatic(),
		map[string]float64{"congress": -0.5, "happy": -1},
	)
	assert.Equal(t, -0.5, lx.Polarity("Congress"))
	assert.Equal(t, 1.0, lx.Polarity("happy"))
	assert.Equal(t, 0.0, lx.Polarity("pizza"))

	tree := build(t,
		ann("congress", "ROOT", "congress", "NOUN"),
	)
	ts := ScoreTree(tree, lx)
	assert.Equal(t, 0.5, ts.Pathos)
	assert.True(t, ts.Negative)
}
