// Copyright 2023 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2023 Institute of the Czech National Corpus,
//                Faculty of Arts, Charles University
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

package worker

import (
	"compelometer/rdb"
	"compelometer/results"
	"compelometer/scoring"
	"context"
	"strings"
)

func (w *Worker) score(ctx context.Context, args rdb.ScoreArgs) (*results.ScoreResult, bool) {
	if strings.TrimSpace(args.Text) == "" {
		return &results.ScoreResult{Error: "empty text"}, true
	}
	mode := scoring.Mode(args.Mode)
	if mode == "" {
		mode = scoring.ModeStatic
	}
	ans, err := w.engine.Score(ctx, args.Text, mode)
	if err != nil {
		return &results.ScoreResult{Mode: string(mode), Error: err.Error()}, scoring.IsUserError(err)
	}
	if args.Describe {
		descs := scoring.Describe(ans)
		ans.Descriptions = &descs
	}
	return &ans, false
}

func (w *Worker) train(ctx context.Context, args rdb.TrainArgs) (*results.TrainResult, bool) {
	if strings.TrimSpace(args.Text) == "" {
		return &results.TrainResult{Error: "empty text"}, true
	}
	ans, err := w.engine.Train(ctx, args.Text)
	if err != nil {
		ans.Error = err.Error()
		return &ans, scoring.IsUserError(err)
	}
	return &ans, false
}
