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

type builder struct {
	clause []Annotation
	used   []bool
	errs   []error
}

// resolve finds an unused annotation for a child word. Both the surface
// form and the head must match so repeated words in a clause
// get attached to the right parent.
func (b *builder) resolve(word, head string) int {
	for i, ann := range b.clause {
		if !b.used[i] && ann.Word == word && ann.Head == head {
			return i
		}
	}
	return -1
}

func (b *builder) expand(t *Tree, annIdx int, id NodeID) {
	ann := b.clause[annIdx]
	for _, chWord := range ann.Children {
		j := b.resolve(chWord, ann.Word)
		if j < 0 {
			b.errs = append(b.errs, &AttachError{Word: chWord, Head: ann.Word})
			continue
		}
		b.used[j] = true
		chID := t.add(b.clause[j].Node, id)
		b.expand(t, j, chID)
	}
}

// Build creates dependency trees out of a flat list of parser
// annotations of a single clause. One tree is created for each
// node labeled as ROOT so a clause without ROOT produces no tree.
// Children which cannot be attached are skipped and reported
// via returned errors (all of them wrap ErrCannotAttach).
// Each annotation is used at most once so the function always
// terminates even for cyclic parser output.
func Build(clause []Annotation) ([]*Tree, []error) {
	b := &builder{
		clause: clause,
		used:   make([]bool, len(clause)),
	}
	var ans []*Tree
	for i, ann := range clause {
		if ann.Dep != DepRoot || b.used[i] {
			continue
		}
		b.used[i] = true
		t := new(Tree)
		root := t.add(ann.Node, noParent)
		b.expand(t, i, root)
		ans = append(ans, t)
	}
	return ans, b.errs
}
