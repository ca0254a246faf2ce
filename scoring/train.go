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

package scoring

import (
	"compelometer/logos"
	"compelometer/results"
	"context"
	"strings"

	"github.com/rs/zerolog/log"
)

// Train scores each sentence of the text in the adaptive mode
// so the adaptive lexicon learns from all of them. Sentences
// failing to be scored are skipped.
func (e *Engine) Train(ctx context.Context, text string) (results.TrainResult, error) {
	if e.store == nil {
		return results.TrainResult{}, ErrNoAdaptiveStore
	}
	var ans results.TrainResult
	learned := make(map[string]bool)
	for _, sent := range logos.SplitSentences(strings.ToLower(text)) {
		if err := ctx.Err(); err != nil {
			return ans, err
		}
		res, err := e.Score(ctx, sent, ModeAdaptive)
		if err != nil {
			ans.NumFailed++
			log.Warn().Err(err).Str("sentence", sent).Msg("failed to train on sentence")
			continue
		}
		ans.Sentences++
		if res.LearnError != "" {
			ans.NumFailed++
		}
		for _, w := range res.Learned {
			if !learned[w] {
				learned[w] = true
				ans.LearnedWords = append(ans.LearnedWords, w)
			}
		}
	}
	log.Info().
		Int("sentences", ans.Sentences).
		Int("learnedWords", len(ans.LearnedWords)).
		Int("failed", ans.NumFailed).
		Msg("training finished")
	return ans, nil
}
