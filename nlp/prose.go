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

package nlp

import (
	"compelometer/parsetree"
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/tsawler/prose/v3"
)

var (
	auxiliaries = map[string]bool{
		"be": true, "am": true, "is": true, "are": true, "was": true, "were": true,
		"been": true, "being": true, "'s": true, "'re": true, "'m": true,
		"do": true, "does": true, "did": true,
		"have": true, "has": true, "had": true, "'ve": true,
		"will": true, "would": true, "shall": true, "should": true,
		"can": true, "could": true, "may": true, "might": true, "must": true,
	}

	negations = map[string]bool{
		"not":   true,
		"n't":   true,
		"never": true,
	}
)

func isPunct(tok prose.Token) bool {
	for _, r := range tok.Text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func tagDocument(ctx context.Context, text string) ([]prose.Token, error) {
	doc, err := prose.NewDocument(
		text,
		prose.WithContext(ctx),
		prose.WithSegmentation(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to tag text: %w", err)
	}
	tokens := doc.Tokens()
	ans := make([]prose.Token, 0, len(tokens))
	for _, tok := range tokens {
		if !isPunct(tok) {
			ans = append(ans, tok)
		}
	}
	return ans, nil
}

// ----

// ProseTagger is a local Penn Treebank tagger
type ProseTagger struct{}

func (pt ProseTagger) Tag(ctx context.Context, text string) ([]TaggedWord, error) {
	tokens, err := tagDocument(ctx, text)
	if err != nil {
		return nil, err
	}
	ans := make([]TaggedWord, len(tokens))
	for i, tok := range tokens {
		ans[i] = TaggedWord{Word: strings.ToLower(tok.Text), Tag: tok.Tag}
	}
	return ans, nil
}

// ----

// ProseParser is a local fallback for cases where no dependency
// parsing service is available. It tags the clause and attaches
// words using a few positional rules:
//   - the first main verb (or the copula) is the root,
//   - negations depend on the closest verb,
//   - adverbs modify the following adjective, verb or adverb,
//   - determiners and adjectives modify the following noun,
//   - everything else depends on the root.
//
// The rules are good enough to find negated and intensified
// sentiment words, not to produce linguistically correct trees.
type ProseParser struct{}

type pword struct {
	text string
	tag  string
	dep  string
	head int
}

func isVerbTag(tag string) bool {
	return strings.HasPrefix(tag, "VB") || tag == "MD"
}

func isAux(w pword) bool {
	return w.tag == "MD" || isVerbTag(w.tag) && auxiliaries[w.text]
}

func findRoot(words []pword) int {
	firstAux := -1
	for i, w := range words {
		if !isVerbTag(w.tag) || negations[w.text] {
			continue
		}
		if !isAux(w) {
			return i
		}
		if firstAux < 0 {
			firstAux = i
		}
	}
	if firstAux >= 0 {
		return firstAux
	}
	for i, w := range words {
		if strings.HasPrefix(w.tag, "NN") || strings.HasPrefix(w.tag, "JJ") {
			return i
		}
	}
	return 0
}

func nextMatching(words []pword, from int, pred func(tag string) bool) int {
	for i := from + 1; i < len(words); i++ {
		if pred(words[i].tag) {
			return i
		}
	}
	return -1
}

// negationHead finds a verb a negation belongs to. Negated
// auxiliaries pass the negation to the following main verb.
func negationHead(words []pword, idx, root int) int {
	for i := idx - 1; i >= 0; i-- {
		if !isVerbTag(words[i].tag) || negations[words[i].text] {
			continue
		}
		if i == root || !isAux(words[i]) {
			return i
		}
		for j := idx + 1; j < len(words); j++ {
			if isVerbTag(words[j].tag) && !isAux(words[j]) && !negations[words[j].text] {
				return j
			}
		}
		return root
	}
	for j := idx + 1; j < len(words); j++ {
		if isVerbTag(words[j].tag) && !negations[words[j].text] {
			return j
		}
	}
	return root
}

func isNounTag(tag string) bool {
	return strings.HasPrefix(tag, "NN")
}

func isModifiable(tag string) bool {
	return strings.HasPrefix(tag, "JJ") || strings.HasPrefix(tag, "VB") || strings.HasPrefix(tag, "RB")
}

func isNominalModifier(tag string) bool {
	return strings.HasPrefix(tag, "JJ") || tag == "DT" || tag == "PRP$" || tag == "CD"
}

// attach resolves heads so each word depends either on the root,
// on a word to its right or (negations only) on a verb which itself
// depends on the root. This way no cycles can emerge.
func attach(words []pword) int {
	root := findRoot(words)
	for i := range words {
		w := &words[i]
		if i == root {
			w.dep = parsetree.DepRoot
			w.head = i
			continue
		}
		w.head = root
		switch {
		case negations[w.text]:
			w.dep = parsetree.DepNeg
			w.head = negationHead(words, i, root)
		case strings.HasPrefix(w.tag, "RB"):
			w.dep = parsetree.DepAdvmod
			if h := nextMatching(words, i, isModifiable); h > i {
				w.head = h
			}
		case isNominalModifier(w.tag):
			if h := nextMatching(words, i, isNounTag); h > i && allModifiers(words[i+1:h]) {
				w.head = h
				w.dep = modifierDep(w.tag)

			} else if strings.HasPrefix(w.tag, "JJ") {
				w.dep = "acomp"

			} else {
				w.dep = modifierDep(w.tag)
			}
		case isAux(*w):
			w.dep = "aux"
		case isVerbTag(w.tag):
			w.dep = "xcomp"
		case isNounTag(w.tag) || w.tag == "PRP":
			if i < root {
				w.dep = "nsubj"

			} else {
				w.dep = "dobj"
			}
		case w.tag == "IN" || w.tag == "TO":
			w.dep = "prep"
		default:
			w.dep = "dep"
		}
	}
	return root
}

func allModifiers(words []pword) bool {
	for _, w := range words {
		if !isNominalModifier(w.tag) {
			return false
		}
	}
	return true
}

func modifierDep(tag string) string {
	switch {
	case strings.HasPrefix(tag, "JJ"):
		return "amod"
	case tag == "CD":
		return "nummod"
	case tag == "PRP$":
		return "poss"
	}
	return "det"
}

func (pp ProseParser) Parse(ctx context.Context, clause string) ([]Annotation, error) {
	tokens, err := tagDocument(ctx, clause)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return []Annotation{}, nil
	}
	words := make([]pword, len(tokens))
	for i, tok := range tokens {
		words[i] = pword{text: strings.ToLower(tok.Text), tag: tok.Tag}
	}
	attach(words)
	ans := make([]Annotation, len(words))
	for i, w := range words {
		ans[i] = Annotation{
			Node: parsetree.Node{
				Word: w.text,
				Dep:  w.dep,
				Head: words[w.head].text,
				POS:  w.tag,
			},
		}
	}
	for i, w := range words {
		if w.head != i {
			ans[w.head].Children = append(ans[w.head].Children, w.text)
		}
	}
	return ans, nil
}
