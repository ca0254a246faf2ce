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

// NodeID identifies a node within a single Tree. IDs are assigned
// in pre-order during construction, the root always has ID 0.
type NodeID int

const noParent NodeID = -1

// Tree is a dependency tree of one clause stored as an arena.
// Besides the immutable parser nodes, each node carries a mutable
// sentiment value used by the scoring passes.
// A Tree instance is not safe for concurrent use.
type Tree struct {
	nodes     []Node
	children  [][]NodeID
	parent    []NodeID
	sentiment []float64
}

func (t *Tree) add(node Node, parent NodeID) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, node)
	t.children = append(t.children, nil)
	t.parent = append(t.parent, parent)
	t.sentiment = append(t.sentiment, 0)
	if parent != noParent {
		t.children[parent] = append(t.children[parent], id)
	}
	return id
}

func (t *Tree) valid(id NodeID) bool {
	return t != nil && id >= 0 && int(id) < len(t.nodes)
}

// IsEmpty returns true if the tree has no root node
func (t *Tree) IsEmpty() bool {
	return t == nil || len(t.nodes) == 0
}

// Len returns number of nodes
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.nodes)
}

// Root returns the root id, for an empty tree ok is false
func (t *Tree) Root() (NodeID, bool) {
	if t.IsEmpty() {
		return noParent, false
	}
	return 0, true
}

// Node returns the parser node stored under id.
// The function panics for an invalid id.
func (t *Tree) Node(id NodeID) Node {
	return t.nodes[id]
}

// Children returns child ids in the parser order.
// An invalid id has no children.
func (t *Tree) Children(id NodeID) []NodeID {
	if !t.valid(id) {
		return nil
	}
	return t.children[id]
}

// Parent returns the parent id. For the root and for
// an invalid id, ok is false.
func (t *Tree) Parent(id NodeID) (NodeID, bool) {
	if !t.valid(id) || t.parent[id] == noParent {
		return noParent, false
	}
	return t.parent[id], true
}

// Sentiment returns the working sentiment of a node.
// An invalid id yields zero.
func (t *Tree) Sentiment(id NodeID) float64 {
	if !t.valid(id) {
		return 0
	}
	return t.sentiment[id]
}

// SetSentiment sets the working sentiment of a node.
// An invalid id is ignored.
func (t *Tree) SetSentiment(id NodeID, v float64) {
	if !t.valid(id) {
		return
	}
	t.sentiment[id] = v
}

// ResetSentiment sets all the working sentiment values back to zero
func (t *Tree) ResetSentiment() {
	for i := range t.sentiment {
		t.sentiment[i] = 0
	}
}

// Walk visits all nodes in pre-order (i.e. parent before
// its children, children in the parser order). Returning false
// from fn stops the walk.
func (t *Tree) Walk(fn func(id NodeID) bool) {
	if t.IsEmpty() {
		return
	}
	t.walkFrom(0, fn)
}

func (t *Tree) walkFrom(id NodeID, fn func(id NodeID) bool) bool {
	if !fn(id) {
		return false
	}
	for _, ch := range t.children[id] {
		if !t.walkFrom(ch, fn) {
			return false
		}
	}
	return true
}

// Contains tests whether there is a node with the provided
// part of speech tag.
func (t *Tree) Contains(pos string) bool {
	var ans bool
	t.Walk(func(id NodeID) bool {
		if t.nodes[id].POS == pos {
			ans = true
			return false
		}
		return true
	})
	return ans
}

// NodesWithPOS lists all nodes with the provided POS tag
func (t *Tree) NodesWithPOS(pos string) []NodeID {
	return t.filter(func(n Node) bool { return n.POS == pos })
}

// NodesWithDep lists all nodes with the provided dependency label
func (t *Tree) NodesWithDep(tag string) []NodeID {
	return t.filter(func(n Node) bool { return n.Dep == tag })
}

func (t *Tree) filter(pred func(n Node) bool) []NodeID {
	ans := make([]NodeID, 0, 4)
	t.Walk(func(id NodeID) bool {
		if pred(t.nodes[id]) {
			ans = append(ans, id)
		}
		return true
	})
	return ans
}

// Find searches for the first node (in pre-order) equal to the
// provided one. For trees with repeated identical word tuples,
// callers should work with NodeID values instead.
func (t *Tree) Find(node Node) (NodeID, bool) {
	ans := noParent
	t.Walk(func(id NodeID) bool {
		if t.nodes[id] == node {
			ans = id
			return false
		}
		return true
	})
	return ans, ans != noParent
}

// Subtree returns all the nodes of the subtree rooted
// at id (including id) in pre-order.
func (t *Tree) Subtree(id NodeID) []NodeID {
	if !t.valid(id) {
		return nil
	}
	ans := make([]NodeID, 0, 4)
	t.walkFrom(id, func(v NodeID) bool {
		ans = append(ans, v)
		return true
	})
	return ans
}

// ParentsOfDep returns distinct parents of all the nodes
// labeled with the provided dependency tag. The order follows
// the first occurrence of the matching children.
func (t *Tree) ParentsOfDep(tag string) []NodeID {
	ans := make([]NodeID, 0, 2)
	seen := make(map[NodeID]bool)
	for _, id := range t.NodesWithDep(tag) {
		p, ok := t.Parent(id)
		if !ok || seen[p] {
			continue
		}
		seen[p] = true
		ans = append(ans, p)
	}
	return ans
}

// RightSiblingsOf returns for each child of parent labeled with tag
// the immediately following sibling. Only children at positions
// 0..len-2 are examined.
func (t *Tree) RightSiblingsOf(parent NodeID, tag string) []NodeID {
	ch := t.Children(parent)
	ans := make([]NodeID, 0, 1)
	for i := 0; i < len(ch)-1; i++ {
		if t.nodes[ch[i]].Dep == tag {
			ans = append(ans, ch[i+1])
		}
	}
	return ans
}

// RightSiblingsOfDep applies RightSiblingsOf to all the distinct
// parents of tag-labeled nodes.
func (t *Tree) RightSiblingsOfDep(tag string) []NodeID {
	var ans []NodeID
	for _, p := range t.ParentsOfDep(tag) {
		ans = append(ans, t.RightSiblingsOf(p, tag)...)
	}
	return ans
}
