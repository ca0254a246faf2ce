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
	"compelometer/merror"
	"compelometer/rdb"
	"compelometer/results"
	"compelometer/scoring"
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	DefaultTickerInterval = 2 * time.Second
)

type scorer interface {
	Score(ctx context.Context, text string, mode scoring.Mode) (results.ScoreResult, error)
	Train(ctx context.Context, text string) (results.TrainResult, error)
}

// Worker takes queries from the Redis queue, runs them using
// the scoring engine and publishes the results.
type Worker struct {
	ID         string
	messages   <-chan *redis.Message
	radapter   *rdb.Adapter
	engine     scorer
	ticker     *time.Ticker
	jobTimeout time.Duration
}

func (w *Worker) publishResult(
	res results.SerializableResult,
	query rdb.Query,
	procBegin time.Time,
	userErr bool,
) error {
	ans, err := rdb.CreateWorkerResult(res)
	if err != nil {
		return err
	}
	ans.ID = query.Channel
	ans.WorkerID = w.ID
	ans.HasUserError = userErr
	ans.ProcBegin = procBegin
	ans.ProcEnd = time.Now()
	log.Info().
		Str("func", query.Func).
		Float64("procTimeSecs", ans.ProcEnd.Sub(procBegin).Seconds()).
		Bool("userError", userErr).
		AnErr("error", res.Err()).
		Msg("job processed")
	return w.radapter.PublishResult(query.Channel, ans)
}

func (w *Worker) runQueryProtected(
	ctx context.Context,
	query rdb.Query,
) (ans results.SerializableResult, userErr bool, ansErr error) {
	defer func() {
		if r := recover(); r != nil {
			ansErr = merror.RecoveredError{Msg: merror.PanicValueToErr(r).Error()}
		}
	}()
	jobCtx, cancel := context.WithTimeout(ctx, w.jobTimeout)
	defer cancel()

	switch query.Func {
	case rdb.FuncScore:
		var args rdb.ScoreArgs
		if err := decodeArgs(query, &args); err != nil {
			return nil, true, err
		}
		ans, userErr = w.score(jobCtx, args)
	case rdb.FuncTrain:
		var args rdb.TrainArgs
		if err := decodeArgs(query, &args); err != nil {
			return nil, true, err
		}
		ans, userErr = w.train(jobCtx, args)
	default:
		return nil, true, merror.InputError{Msg: "unknown query function: " + query.Func}
	}
	return
}

func (w *Worker) tryNextQuery(ctx context.Context) error {

	time.Sleep(time.Duration(rand.Intn(40)) * time.Millisecond)
	query, err := w.radapter.DequeueQuery()
	if errors.Is(err, rdb.ErrorEmptyQueue) {
		return nil

	} else if err != nil {
		return err
	}
	log.Debug().
		Str("channel", query.Channel).
		Str("func", query.Func).
		Msg("received query")

	isActive, err := w.radapter.SomeoneListens(query)
	if err != nil {
		return err
	}
	if !isActive {
		log.Warn().
			Str("func", query.Func).
			Str("channel", query.Channel).
			Msg("worker found an inactive query")
		return nil
	}

	procBegin := time.Now()
	ans, userErr, err := w.runQueryProtected(ctx, query)
	if err != nil {
		var rcvErr merror.RecoveredError
		if errors.As(err, &rcvErr) {
			log.Error().Err(err).Str("func", query.Func).Msg("worker panicked")
		}
		ans = &results.ErrorResult{Func: query.Func, Error: err.Error()}
	}
	return w.publishResult(ans, query, procBegin, userErr)
}

// Listen processes queries until the context is cancelled.
// Besides reacting to notifications, the queue is checked
// periodically so no query stays unprocessed.
func (w *Worker) Listen(ctx context.Context) {
	for {
		select {
		case <-w.ticker.C:
			if err := w.tryNextQuery(ctx); err != nil {
				log.Error().Err(err).Msg("failed to process query")
			}
		case <-ctx.Done():
			log.Info().Msg("worker exiting")
			return
		case msg, ok := <-w.messages:
			if !ok {
				log.Warn().Msg("query notification channel closed")
				w.messages = nil
				continue
			}
			if msg.Payload == rdb.MsgNewQuery {
				if err := w.tryNextQuery(ctx); err != nil {
					log.Error().Err(err).Msg("failed to process query")
				}
			}
		}
	}
}

func (w *Worker) Start(ctx context.Context) {
	go w.Listen(ctx)
}

func (w *Worker) Stop(ctx context.Context) error {
	log.Warn().Str("workerId", w.ID).Msg("stopping worker")
	w.ticker.Stop()
	return nil
}

func NewWorker(
	workerID string,
	radapter *rdb.Adapter,
	messages <-chan *redis.Message,
	engine scorer,
	jobTimeout time.Duration,
) *Worker {
	return &Worker{
		ID:         workerID,
		radapter:   radapter,
		messages:   messages,
		engine:     engine,
		ticker:     time.NewTicker(DefaultTickerInterval),
		jobTimeout: jobTimeout,
	}
}
