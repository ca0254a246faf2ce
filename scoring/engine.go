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

// Package scoring combines pathos and logos of a text into
// a single compellingness score and maintains the adaptive lexicon.
package scoring

import (
	"compelometer/lexicon"
	"compelometer/logos"
	"compelometer/merror"
	"compelometer/nlp"
	"compelometer/parsetree"
	"compelometer/pathos"
	"compelometer/results"
	"context"
	"errors"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/rs/zerolog/log"
)

const (
	MaxCompellingness = 2.0
)

type Mode string

const (
	ModeStatic   Mode = "static"
	ModeAdaptive Mode = "adaptive"
)

func (m Mode) Validate() error {
	if m != ModeStatic && m != ModeAdaptive {
		return fmt.Errorf("%w: %s", ErrInvalidMode, m)
	}
	return nil
}

var (
	ErrInvalidMode     = errors.New("invalid scoring mode")
	ErrNoAdaptiveStore = errors.New("adaptive lexicon store not configured")
)

// IsUserError tells whether the error has been caused
// by invalid user input (and not by the service itself).
func IsUserError(err error) bool {
	var inputErr merror.InputError
	return errors.As(err, &inputErr) ||
		errors.Is(err, ErrInvalidMode) ||
		errors.Is(err, ErrNoAdaptiveStore)
}

// Combine merges logos and pathos. The stronger of the two
// contributes fully, the weaker one by half. The result
// is kept within [0, MaxCompellingness].
func Combine(logosScore, pathosScore float64) float64 {
	initial := math.Max(logosScore, pathosScore) + 0.5*math.Min(logosScore, pathosScore)
	return math.Max(0, math.Min(initial, MaxCompellingness))
}

// Engine scores texts. It is safe for concurrent use as long
// as the provided parser, tagger and store are.
type Engine struct {
	static *lexicon.Static
	store  lexicon.Store
	logos  *logos.Estimator
	parser nlp.Parser
	tagger nlp.Tagger

	numLearnFailures atomic.Int64
}

// NumLearnFailures returns the number of failed lexicon updates
// since the engine was created.
func (e *Engine) NumLearnFailures() int64 {
	return e.numLearnFailures.Load()
}

func (e *Engine) HasAdaptiveStore() bool {
	return e.store != nil
}

func (e *Engine) parseTrees(ctx context.Context, text string) ([]*parsetree.Tree, error) {
	var ans []*parsetree.Tree
	for _, clause := range nlp.Clauses(text) {
		anns, err := e.parser.Parse(ctx, clause)
		if err != nil {
			return nil, fmt.Errorf("failed to parse clause: %w", err)
		}
		trees, errs := parsetree.Build(anns)
		for _, err := range errs {
			log.Warn().Err(err).Str("clause", clause).Msg("malformed parser output")
		}
		ans = append(ans, trees...)
	}
	return ans, nil
}

// learningCandidates returns distinct words with a relevant
// tag which are not part of the static lexicon.
func (e *Engine) learningCandidates(ctx context.Context, text string) ([]string, error) {
	tagged, err := e.tagger.Tag(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to tag text: %w", err)
	}
	seen := make(map[string]bool)
	ans := make([]string, 0, len(tagged))
	for _, tw := range tagged {
		w := lexicon.Normalize(tw.Word)
		if w == "" || seen[w] || !nlp.IsRelevantTag(tw.Tag) || e.static.Has(w) {
			continue
		}
		seen[w] = true
		ans = append(ans, w)
	}
	return ans, nil
}

func treeWords(trees []*parsetree.Tree) []string {
	var ans []string
	for _, t := range trees {
		t.Walk(func(id parsetree.NodeID) bool {
			ans = append(ans, t.Node(id).Word)
			return true
		})
	}
	return ans
}

// learn records the signed pathos for each word. Failures
// are collected and do not stop the processing.
func (e *Engine) learn(ctx context.Context, words []string, contribution float64) ([]string, error) {
	learned := make([]string, 0, len(words))
	var errs []error
	for _, w := range words {
		if err := e.store.Record(ctx, w, contribution); err != nil {
			e.numLearnFailures.Add(1)
			errs = append(errs, err)
			log.Error().Err(err).Str("word", w).Msg("failed to update adaptive lexicon")
			continue
		}
		learned = append(learned, w)
	}
	return learned, errors.Join(errs...)
}

// Score computes compellingness of a text. In the adaptive mode,
// unknown words are looked up in (and later recorded to) the adaptive
// store. Failures of the recording are reported via
// ScoreResult.LearnError, the scores stay valid.
func (e *Engine) Score(ctx context.Context, text string, mode Mode) (results.ScoreResult, error) {
	if err := mode.Validate(); err != nil {
		return results.ScoreResult{}, err
	}
	if mode == ModeAdaptive && e.store == nil {
		return results.ScoreResult{}, ErrNoAdaptiveStore
	}
	trees, err := e.parseTrees(ctx, text)
	if err != nil {
		return results.ScoreResult{}, err
	}

	var lx pathos.Lexicon
	var candidates []string
	if mode == ModeAdaptive {
		candidates, err = e.learningCandidates(ctx, text)
		if err != nil {
			return results.ScoreResult{}, err
		}
		snapshot, err := lexicon.Snapshot(ctx, e.store, treeWords(trees))
		if err != nil {
			return results.ScoreResult{}, err
		}
		lx = pathos.NewAdaptiveLexicon(e.static, snapshot)

	} else {
		lx = pathos.NewStaticLexicon(e.static)
	}

	pscore := pathos.ScoreTrees(trees, lx)
	lscore := e.logos.Score(text)
	ans := results.ScoreResult{
		Compellingness:  Combine(lscore, pscore.Pathos),
		Pathos:          pscore.Pathos,
		Logos:           lscore,
		NegativePresent: pscore.NegativePresent,
		Mode:            string(mode),
	}

	if mode == ModeAdaptive && len(candidates) > 0 {
		contribution := pscore.Pathos
		if pscore.NegativePresent {
			contribution = -contribution
		}
		learned, err := e.learn(ctx, candidates, contribution)
		ans.Learned = learned
		if err != nil {
			ans.LearnError = err.Error()
		}
	}
	log.Debug().
		Float64("compellingness", ans.Compellingness).
		Float64("pathos", ans.Pathos).
		Float64("logos", ans.Logos).
		Int("trees", len(trees)).
		Str("mode", ans.Mode).
		Msg("text scored")
	return ans, nil
}

// NewEngine creates a scoring engine. The store may be nil
// in which case only the static mode is available.
func NewEngine(
	static *lexicon.Static,
	store lexicon.Store,
	estimator *logos.Estimator,
	parser nlp.Parser,
	tagger nlp.Tagger,
) *Engine {
	return &Engine{
		static: static,
		store:  store,
		logos:  estimator,
		parser: parser,
		tagger: tagger,
	}
}
