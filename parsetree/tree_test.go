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

package parsetree

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ann(word, dep, head, pos string, children ...string) Annotation {
	return Annotation{
		Node:     Node{Word: word, Dep: dep, Head: head, POS: pos},
		Children: children,
	}
}

// water isn't good for people who aren't good
func negationClause() []Annotation {
	return []Annotation{
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
	}
}

func words(t *Tree, ids []NodeID) []string {
	ans := make([]string, len(ids))
	for i, id := range ids {
		ans[i] = t.Node(id).Word
	}
	return ans
}

func TestBuildSingleRoot(t *testing.T) {
	trees, errs := Build(negationClause())
	assert.Empty(t, errs)
	require.Len(t, trees, 1)
	tree := trees[0]
	assert.Equal(t, 10, tree.Len())
	root, ok := tree.Root()
	assert.True(t, ok)
	assert.Equal(t, "is", tree.Node(root).Word)
	assert.Equal(t, []string{"water", "n't", "good"}, words(tree, tree.Children(root)))
}

func TestBuildNoRoot(t *testing.T) {
	trees, errs := Build([]Annotation{
		ann("hello", "intj", "world", "INTJ"),
		ann("world", "dep", "world", "NOUN"),
	})
	assert.Empty(t, trees)
	assert.Empty(t, errs)
}

func TestBuildEmptyClause(t *testing.T) {
	trees, errs := Build(nil)
	assert.Empty(t, trees)
	assert.Empty(t, errs)
}

func TestBuildMultipleRoots(t *testing.T) {
	trees, errs := Build([]Annotation{
		ann("i", "nsubj", "am", "PRON"),
		ann("am", "ROOT", "am", "AUX", "i", "happy"),
		ann("happy", "acomp", "am", "ADJ"),
		ann("you", "nsubj", "are", "PRON"),
		ann("are", "ROOT", "are", "AUX", "you", "sad"),
		ann("sad", "acomp", "are", "ADJ"),
	})
	assert.Empty(t, errs)
	require.Len(t, trees, 2)
	assert.Equal(t, 3, trees[0].Len())
	assert.Equal(t, 3, trees[1].Len())
}

func TestBuildHomophoneResolvedByHead(t *testing.T) {
	trees, _ := Build(negationClause())
	tree := trees[0]
	goods := tree.NodesWithPOS("ADJ")
	require.Len(t, goods, 2)
	p1, _ := tree.Parent(goods[0])
	p2, _ := tree.Parent(goods[1])
	assert.Equal(t, "is", tree.Node(p1).Word)
	assert.Equal(t, "are", tree.Node(p2).Word)
}

func TestBuildUnattachableChild(t *testing.T) {
	trees, errs := Build([]Annotation{
		ann("it", "ROOT", "it", "PRON", "ghost"),
	})
	require.Len(t, trees, 1)
	assert.Equal(t, 1, trees[0].Len())
	require.Len(t, errs, 1)
	assert.True(t, errors.Is(errs[0], ErrCannotAttach))
	var aErr *AttachError
	require.True(t, errors.As(errs[0], &aErr))
	assert.Equal(t, "ghost", aErr.Word)
}

func TestBuildCyclicOutputTerminates(t *testing.T) {
	trees, errs := Build([]Annotation{
		ann("a", "ROOT", "a", "X", "b"),
		ann("b", "dep", "a", "X", "a"),
		ann("a", "dep", "b", "X", "b"),
	})
	require.Len(t, trees, 1)
	assert.Equal(t, 3, trees[0].Len())
	assert.Len(t, errs, 1)
}

func TestContains(t *testing.T) {
	trees, _ := Build(negationClause())
	assert.True(t, trees[0].Contains("NOUN"))
	assert.True(t, trees[0].Contains("PRON"))
	assert.False(t, trees[0].Contains("FAKE_POS"))
	var empty Tree
	assert.False(t, empty.Contains("NOUN"))
}

func TestNodesWithPOSAndDep(t *testing.T) {
	trees, _ := Build(negationClause())
	tree := trees[0]
	assert.Equal(t, []string{"is", "are"}, words(tree, tree.NodesWithPOS("AUX")))
	assert.Equal(t, []string{"water", "people"}, words(tree, tree.NodesWithPOS("NOUN")))
	assert.Equal(t, []string{"n't", "n't"}, words(tree, tree.NodesWithDep(DepNeg)))
}

func TestParentsOfDep(t *testing.T) {
	trees, _ := Build(negationClause())
	tree := trees[0]
	assert.Equal(t, []string{"is", "are"}, words(tree, tree.ParentsOfDep(DepNeg)))
}

func TestParentsOfDepDistinct(t *testing.T) {
	trees, _ := Build([]Annotation{
		ann("go", "ROOT", "go", "VERB", "not", "never", "home"),
		ann("not", "neg", "go", "PART"),
		ann("never", "neg", "go", "ADV"),
		ann("home", "advmod", "go", "ADV"),
	})
	tree := trees[0]
	assert.Equal(t, []string{"go"}, words(tree, tree.ParentsOfDep(DepNeg)))
}

func TestParentsOfRootLabel(t *testing.T) {
	trees, _ := Build(negationClause())
	assert.Empty(t, trees[0].ParentsOfDep(DepRoot))
}

func TestRightSiblingsOfDep(t *testing.T) {
	trees, _ := Build(negationClause())
	tree := trees[0]
	sibs := tree.RightSiblingsOfDep(DepNeg)
	assert.Equal(t, []string{"good", "good"}, words(tree, sibs))
	p, _ := tree.Parent(sibs[1])
	assert.Equal(t, "are", tree.Node(p).Word)
}

func TestRightSiblingsLastChildExcluded(t *testing.T) {
	trees, _ := Build([]Annotation{
		ann("stop", "ROOT", "stop", "VERB", "now", "not"),
		ann("now", "advmod", "stop", "ADV"),
		ann("not", "neg", "stop", "PART"),
	})
	assert.Empty(t, trees[0].RightSiblingsOfDep(DepNeg))
}

func TestFindAndSubtree(t *testing.T) {
	trees, _ := Build(negationClause())
	tree := trees[0]
	id, ok := tree.Find(Node{Word: "people", Dep: "pobj", Head: "for", POS: "NOUN"})
	require.True(t, ok)
	assert.Equal(t, []string{"people", "are", "who", "n't", "good"}, words(tree, tree.Subtree(id)))
	_, ok = tree.Find(Node{Word: "people"})
	assert.False(t, ok)
}

func TestSentimentState(t *testing.T) {
	trees, _ := Build(negationClause())
	tree := trees[0]
	tree.SetSentiment(3, -1)
	assert.Equal(t, -1.0, tree.Sentiment(3))
	tree.ResetSentiment()
	assert.Equal(t, 0.0, tree.Sentiment(3))
}

func TestInvalidNodeID(t *testing.T) {
	trees, _ := Build(negationClause())
	tree := trees[0]
	for _, id := range []NodeID{-1, NodeID(tree.Len()), NodeID(tree.Len() + 10)} {
		assert.NotPanics(t, func() { tree.SetSentiment(id, 1) })
		assert.Equal(t, 0.0, tree.Sentiment(id))
		assert.Nil(t, tree.Children(id))
		_, ok := tree.Parent(id)
		assert.False(t, ok)
	}
	var empty *Tree
	assert.Equal(t, 0.0, empty.Sentiment(0))
}
