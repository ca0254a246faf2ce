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

// Package nlp provides adapters to external tokenizers, taggers
// and dependency parsers.
package nlp

import (
	"compelometer/parsetree"
	"context"
	"regexp"
	"strings"
)

var clauseSep = regexp.MustCompile(`[!?.]+`)

type Annotation = parsetree.Annotation

// Parser produces flat dependency annotations of a single clause
type Parser interface {
	Parse(ctx context.Context, clause string) ([]Annotation, error)
}

// TaggedWord is a word with its Penn Treebank tag
type TaggedWord struct {
	Word string `json:"word"`
	Tag  string `json:"tag"`
}

type Tagger interface {
	Tag(ctx context.Context, text string) ([]TaggedWord, error)
}

// IsRelevantTag tests whether a word with the Penn tag may carry
// sentiment worth learning (adjectives, nouns and non-participle verbs).
func IsRelevantTag(tag string) bool {
	switch {
	case strings.HasPrefix(tag, "JJ"), strings.HasPrefix(tag, "NN"):
		return true
	case strings.HasPrefix(tag, "VB"):
		return tag != "VBG" && tag != "VBN"
	}
	return false
}

// Clauses normalizes a text and splits it into lowercase clauses
// ready for parsing.
func Clauses(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", " ")
	text = strings.ReplaceAll(text, "\n", " ")
	parts := clauseSep.Split(text, -1)
	ans := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Join(strings.Fields(p), " ")
		if p != "" {
			ans = append(ans, strings.ToLower(p))
		}
	}
	return ans
}

// ----

// MapParser returns prepared annotations for known clauses
// and an empty parse for all the others.
type MapParser map[string][]Annotation

func (mp MapParser) Parse(ctx context.Context, clause string) ([]Annotation, error) {
	return mp[clause], nil
}

// MapTagger returns prepared tags for known words, all
// the other words are tagged as `NN`.
type MapTagger map[string]string

func (mt MapTagger) Tag(ctx context.Context, text string) ([]TaggedWord, error) {
	var ans []TaggedWord
	for _, w := range strings.Fields(strings.ToLower(text)) {
		w = strings.Trim(w, ".,!?;:\"'()")
		if w == "" {
			continue
		}
		tag, ok := mt[w]
		if !ok {
			tag = "NN"
		}
		ans = append(ans, TaggedWord{Word: w, Tag: tag})
	}
	return ans, nil
}
