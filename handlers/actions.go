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
	"compelometer/lexicon"
	"compelometer/metrics"
	"compelometer/rdb"
	"compelometer/results"
	"compelometer/scoring"
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
)

const (
	localWorkerID = "local"
)

type scorer interface {
	Score(ctx context.Context, text string, mode scoring.Mode) (results.ScoreResult, error)
	Train(ctx context.Context, text string) (results.TrainResult, error)
}

type jobLogger interface {
	Log(rec results.JobLog)
}

// Actions contains all the scoring and lexicon related
// API actions. In case a Redis adapter is provided, scoring
// and training jobs are sent to workers. Otherwise, they are
// processed directly by the API server.
type Actions struct {
	engine    scorer
	radapter  *rdb.Adapter
	static    *lexicon.Static
	store     lexicon.Store
	jobLogger jobLogger
}

func (a *Actions) logLocalJob(fn string, begin time.Time, err error) {
	if a.jobLogger == nil {
		return
	}
	rec := results.JobLog{
		WorkerID: localWorkerID,
		Func:     fn,
		Begin:    begin,
		End:      time.Now(),
	}
	if err != nil {
		rec.Err = err.Error()
	}
	a.jobLogger.Log(rec)
}

// waitForWorker publishes the query and waits for the result.
// In case no result arrives in time, false is returned and
// a proper error response is written.
func (a *Actions) waitForWorker(
	ctx *gin.Context,
	query rdb.Query,
	cached bool,
) (*rdb.WorkerResult, bool) {
	waitCtx, cancel := context.WithTimeout(ctx.Request.Context(), a.radapter.QueryAnswerTimeout())
	defer cancel()
	var wait <-chan *rdb.WorkerResult
	var err error
	if cached {
		wait, err = a.radapter.PublishQueryCached(waitCtx, query)

	} else {
		wait, err = a.radapter.PublishQuery(waitCtx, query)
	}
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusInternalServerError)
		return nil, false
	}
	rawResult, ok := <-wait
	if !ok {
		metrics.WorkerTimeouts.Inc()
		uniresp.RespondWithErrorJSON(
			ctx, errWorkerTimeout, http.StatusGatewayTimeout)
		return nil, false
	}
	return rawResult, true
}

func describeRequested(ctx *gin.Context) bool {
	v, err := strconv.ParseBool(ctx.DefaultQuery("describe", "0"))
	return err == nil && v
}

func NewActions(
	engine scorer,
	radapter *rdb.Adapter,
	static *lexicon.Static,
	store lexicon.Store,
	jobLogger jobLogger,
) *Actions {
	return &Actions{
		engine:    engine,
		radapter:  radapter,
		static:    static,
		store:     store,
		jobLogger: jobLogger,
	}
}
