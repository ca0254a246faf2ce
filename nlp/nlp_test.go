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
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClauses(t *testing.T) {
	assert.Equal(
		t,
		[]string{"i am happy", "are you", "fine"},
		Clauses("I am happy!\nAre   you?!\r\nFine..."),
	)
	assert.Empty(t, Clauses(" ... "))
}

func TestIsRelevantTag(t *testing.T) {
	for _, tag := range []string{"JJ", "JJR", "JJS", "NN", "NNS", "NNP", "VB", "VBD", "VBP", "VBZ"} {
		assert.True(t, IsRelevantTag(tag), tag)
	}
	for _, tag := range []string{"VBG", "VBN", "RB", "DT", "PRP", "IN", "CD"} {
		assert.False(t, IsRelevantTag(tag), tag)
	}
}

func TestMapTagger(t *testing.T) {
	tagged, err := MapTagger{"lost": "VBD", "76": "CD"}.Tag(context.Background(), "76 People lost.")
	require.NoError(t, err)
	assert.Equal(t, []TaggedWord{{"76", "CD"}, {"people", "NN"}, {"lost", "VBD"}}, tagged)
}

func words(in ...string) []pword {
	ans := make([]pword, len(in)/2)
	for i := 0; i < len(in); i += 2 {
		ans[i/2] = pword{text: in[i], tag: in[i+1]}
	}
	return ans
}

func heads(ws []pword) []string {
	ans := make([]string, len(ws))
	for i, w := range ws {
		ans[i] = ws[w.head].text + "/" + w.dep
	}
	return ans
}

func TestAttachCopula(t *testing.T) {
	ws := words("it", "PRP", "is", "VBZ", "not", "RB", "good", "JJ")
	root := attach(ws)
	assert.Equal(t, 1, root)
	assert.Equal(t, []string{"is/nsubj", "is/ROOT", "is/neg", "is/acomp"}, heads(ws))
}

func TestAttachNegatedAuxiliary(t *testing.T) {
	ws := words("i", "PRP", "do", "VBP", "not", "RB", "like", "VB", "it", "PRP")
	root := attach(ws)
	assert.Equal(t, 3, root)
	assert.Equal(t, []string{"like/nsubj", "like/aux", "like/neg", "like/ROOT", "like/dobj"}, heads(ws))
}

func TestAttachModifiers(t *testing.T) {
	ws := words(
		"the", "DT", "very", "RB", "happy", "JJ", "dog", "NN",
		"ate", "VBD", "76", "CD", "big", "JJ", "bones", "NNS",
	)
	attach(ws)
	assert.Equal(t, []string{
		"ate/det", "happy/advmod", "dog/amod", "ate/nsubj",
		"ate/ROOT", "bones/nummod", "bones/amod", "ate/dobj",
	}, heads(ws))
}

func TestAttachWithoutVerb(t *testing.T) {
	ws := words("what", "WP", "a", "DT", "day", "NN")
	root := attach(ws)
	assert.Equal(t, 2, root)
}

func TestAttachedWordsBuildTree(t *testing.T) {
	ws := words(
		"water", "NN", "is", "VBZ", "n't", "RB", "good", "JJ", "for", "IN",
		"people", "NNS", "who", "WP", "are", "VBP", "n't", "RB", "good", "JJ",
	)
	attach(ws)
	anns := make([]Annotation, len(ws))
	for i, w := range ws {
		anns[i] = Annotation{Node: parsetree.Node{Word: w.text, Dep: w.dep, Head: ws[w.head].text, POS: w.tag}}
	}
	for i, w := range ws {
		if w.head != i {
			anns[w.head].Children = append(anns[w.head].Children, w.text)
		}
	}
	trees, errs := parsetree.Build(anns)
	assert.Empty(t, errs)
	require.Len(t, trees, 1)
	assert.Equal(t, len(ws), trees[0].Len())
	assert.Len(t, trees[0].RightSiblingsOfDep(parsetree.DepNeg), 2)
}

func TestProseParserProducesTree(t *testing.T) {
	anns, err := ProseParser{}.Parse(context.Background(), "i am not happy with the results")
	require.NoError(t, err)
	require.NotEmpty(t, anns)
	trees, errs := parsetree.Build(anns)
	assert.Empty(t, errs)
	require.Len(t, trees, 1)
	assert.Equal(t, len(anns), trees[0].Len())
}

func TestProseParserEmpty(t *testing.T) {
	anns, err := ProseParser{}.Parse(context.Background(), "   ")
	assert.NoError(t, err)
	assert.Empty(t, anns)
}

func TestRemoteParser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req parseRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "i am happy", req.Text)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"annotations": [
			{"word": "i", "dep": "nsubj", "head": "am", "pos": "PRON", "children": []},
			{"word": "am", "dep": "ROOT", "head": "am", "pos": "AUX", "children": ["i", "happy"]},
			{"word": "happy", "dep": "acomp", "head": "am", "pos": "ADJ", "children": []}
		]}`))
	}))
	defer srv.Close()

	rp := NewRemoteParser(srv.URL, 5)
	anns, err := rp.Parse(context.Background(), "i am happy")
	require.NoError(t, err)
	require.Len(t, anns, 3)
	assert.Equal(t, "am", anns[1].Word)
	assert.Equal(t, []string{"i", "happy"}, anns[1].Children)
}

func TestRemoteParserFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error": "model not loaded"}`))
	}))
	defer srv.Close()

	_, err := NewRemoteParser(srv.URL, 5).Parse(context.Background(), "x")
	assert.True(t, errors.Is(err, ErrParserUnavailable))
}

func TestRemoteParserBreakerOpens(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	rp := NewRemoteParser(srv.URL, 5)
	for i := 0; i < breakerMaxFailures; i++ {
		_, err := rp.Parse(context.Background(), "x")
		assert.ErrorIs(t, err, ErrParserUnavailable)
	}
	_, err := rp.Parse(context.Background(), "x")
	assert.ErrorIs(t, err, ErrParserUnavailable)
	assert.Equal(t, int32(breakerMaxFailures), calls.Load())
}

func TestConfValidateAndDefaults(t *testing.T) {
	conf := &Conf{}
	require.NoError(t, conf.ValidateAndDefaults("nlp"))
	assert.Equal(t, ParserProse, conf.Parser)
	assert.IsType(t, ProseParser{}, NewParser(conf))

	remote := &Conf{Parser: ParserRemote}
	assert.Error(t, remote.ValidateAndDefaults("nlp"))
	remote.ParserURL = "http://localhost:8080/parse"
	require.NoError(t, remote.ValidateAndDefaults("nlp"))
	assert.IsType(t, &RemoteParser{}, NewParser(remote))
}
