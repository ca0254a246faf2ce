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
	"fmt"
)

// dependency labels as produced by the external parser
const (
	DepRoot   = "ROOT"
	DepNeg    = "neg"
	DepAdvmod = "advmod"
)

var (
	ErrCannotAttach = errors.New("could not attach node")
)

// Node is a single word of a parsed clause. Once created
// by a parser, it is never modified.
type Node struct {
	Word string `json:"word"`
	Dep  string `json:"dep"`
	Head string `json:"head"`
	POS  string `json:"pos"`
}

func (n Node) String() string {
	return fmt.Sprintf("(%s, %s, %s, %s)", n.Word, n.Dep, n.Head, n.POS)
}

// Annotation is a flat parser record for one word along
// with surface forms of its direct dependents (in the order
// reported by the parser).
type Annotation struct {
	Node
	Children []string `json:"children"`
}

// AttachError reports a word which could not be found
// among the annotations of a clause with the expected head.
type AttachError struct {
	Word string
	Head string
}

func (err *AttachError) Error() string {
	return fmt.Sprintf("%s: `%s` (head `%s`)", ErrCannotAttach, err.Word, err.Head)
}

func (err *AttachError) Unwrap() error {
	return ErrCannotAttach
}
