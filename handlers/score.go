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

package handlers

import (
	"compelometer/merror"
	"compelometer/metrics"
	"compelometer/rdb"
	"compelometer/results"
	"compelometer/scoring"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
)

var (
	errWorkerTimeout = merror.TimeoutError{Msg: "no worker responded in time"}
	errEmptyText     = merror.InputError{Msg: "empty text"}
)

type textRequest struct {
	Text string `json:"text"`
	Mode string `json:"mode"`
}

func decodeTextRequest(ctx *gin.Context) (textRequest, bool) {
	var req textRequest
	if err := json.NewDecoder(ctx.Request.Body).Decode(&req); err != nil {
		uniresp.RespondWithErrorJSON(
			ctx, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return req, false
	}
	if strings.TrimSpace(req.Text) == "" {
		uniresp.RespondWithErrorJSON(ctx, errEmptyText, merror.HTTPStatus(errEmptyText))
		return req, false
	}
	return req, true
}

func errorStatus(err error) int {
	if scoring.IsUserError(err) {
		return http.StatusUnprocessableEntity
	}
	return merror.HTTPStatus(err)
}

func workerErrorStatus(rawResult *rdb.WorkerResult) int {
	if rawResult.HasUserError {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func metricsStatus(httpStatus int) string {
	switch {
	case httpStatus < 400:
		return metrics.StatusOK
	case httpStatus < 500:
		return metrics.StatusUserError
	default:
		return metrics.StatusError
	}
}

// Score calculates compellingness of a text. The request body
// is a JSON object with `text` and an optional `mode` (`static`
// or `adaptive`). With `describe=1`, human readable descriptions
// of the scores are attached.
func (a *Actions) Score(ctx *gin.Context) {
	req, ok := decodeTextRequest(ctx)
	if !ok {
		return
	}
	mode := scoring.Mode(req.Mode)
	if mode == "" {
		mode = scoring.ModeStatic
	}
	if err := mode.Validate(); err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusUnprocessableEntity)
		return
	}
	describe := describeRequested(ctx)

	begin := time.Now()
	status := metrics.StatusError
	defer func() {
		metrics.ScoredTexts.WithLabelValues(string(mode), status).Inc()
		metrics.ScoreDuration.WithLabelValues(string(mode)).Observe(time.Since(begin).Seconds())
	}()
	fail := func(err error, httpStatus int) {
		status = metricsStatus(httpStatus)
		uniresp.RespondWithErrorJSON(ctx, err, httpStatus)
	}

	var ans results.ScoreResult
	if a.radapter == nil {
		var err error
		ans, err = a.engine.Score(ctx.Request.Context(), req.Text, mode)
		a.logLocalJob(rdb.FuncScore, begin, err)
		if err != nil {
			fail(err, errorStatus(err))
			return
		}
		if describe {
			descs := scoring.Describe(ans)
			ans.Descriptions = &descs
		}

	} else {
		query, err := rdb.NewQuery(
			rdb.FuncScore, rdb.ScoreArgs{Text: req.Text, Mode: string(mode), Describe: describe})
		if err != nil {
			fail(err, http.StatusInternalServerError)
			return
		}
		rawResult, ok := a.waitForWorker(ctx, query, mode == scoring.ModeStatic)
		if !ok {
			return
		}
		if err := rawResult.DecodeValue(&ans); err != nil {
			fail(err, workerErrorStatus(rawResult))
			return
		}
		if err := ans.Err(); err != nil {
			fail(err, workerErrorStatus(rawResult))
			return
		}
	}
	status = metrics.StatusOK
	metrics.LearnedWords.Add(float64(len(ans.Learned)))
	uniresp.WriteJSONResponse(ctx.Writer, ans.Rounded())
}

// Train scores all the sentences of a text in the adaptive
// mode so the adaptive lexicon can learn from them.
func (a *Actions) Train(ctx *gin.Context) {
	req, ok := decodeTextRequest(ctx)
	if !ok {
		return
	}
	var ans results.TrainResult
	if a.radapter == nil {
		begin := time.Now()
		var err error
		ans, err = a.engine.Train(ctx.Request.Context(), req.Text)
		a.logLocalJob(rdb.FuncTrain, begin, err)
		if err != nil {
			uniresp.RespondWithErrorJSON(ctx, err, errorStatus(err))
			return
		}

	} else {
		query, err := rdb.NewQuery(rdb.FuncTrain, rdb.TrainArgs{Text: req.Text})
		if err != nil {
			uniresp.RespondWithErrorJSON(ctx, err, http.StatusInternalServerError)
			return
		}
		rawResult, ok := a.waitForWorker(ctx, query, false)
		if !ok {
			return
		}
		if err := rawResult.DecodeValue(&ans); err != nil {
			uniresp.RespondWithErrorJSON(ctx, err, workerErrorStatus(rawResult))
			return
		}
		if err := ans.Err(); err != nil {
			uniresp.RespondWithErrorJSON(ctx, err, workerErrorStatus(rawResult))
			return
		}
	}
	metrics.TrainedSentences.Add(float64(ans.Sentences))
	metrics.LearnedWords.Add(float64(len(ans.LearnedWords)))
	uniresp.WriteJSONResponse(ctx.Writer, ans)
}
