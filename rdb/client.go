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

package rdb

import (
	"compelometer/results"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	MsgNewQuery                = "newQuery"
	DefaultQueueKey            = "compelometerQueue"
	DefaultResultChannelPrefix = "compelometerResults"
	DefaultQueryChannel        = "compelometerQueries"
	DefaultResultExpiration    = 10 * time.Minute

	connectionTestInterval = 2 * time.Second
)

var (
	ErrorEmptyQueue = errors.New("no queries in the queue")
)

type jobLogger interface {
	Log(rec results.JobLog)
}

type Query struct {
	Channel string          `json:"channel"`
	Func    string          `json:"func"`
	Args    json.RawMessage `json:"args"`
}

func (q Query) ToJSON() (string, error) {
	ans, err := json.Marshal(q)
	if err != nil {
		return "", err
	}
	return string(ans), nil
}

func DecodeQuery(q string) (Query, error) {
	var ans Query
	err := json.Unmarshal([]byte(q), &ans)
	return ans, err
}

// NewQuery creates a query with serialized arguments.
// The channel is set by the adapter once published.
func NewQuery(fn string, args any) (Query, error) {
	rawArgs, err := json.Marshal(args)
	if err != nil {
		return Query{}, fmt.Errorf("failed to serialize query args: %w", err)
	}
	return Query{Func: fn, Args: rawArgs}, nil
}

// Adapter provides the job queue functionality on top of Redis.
// The API server publishes queries and waits for results,
// workers dequeue the queries and publish the results.
type Adapter struct {
	ctx                 context.Context
	c                   *redis.Client
	channelQuery        string
	channelResultPrefix string
	queueKey            string
	cachePath           string
	queryAnswerTimeout  time.Duration
	jobLogger           jobLogger
}

// Client exposes the underlying connection so other components
// (e.g. the Redis lexicon backend) can share it.
func (a *Adapter) Client() *redis.Client {
	return a.c
}

func (a *Adapter) QueryAnswerTimeout() time.Duration {
	return a.queryAnswerTimeout
}

// TestConnection pings the server until it responds or
// the timeout elapses.
func (a *Adapter) TestConnection(timeout time.Duration) error {
	tick := time.NewTicker(connectionTestInterval)
	defer tick.Stop()
	timeoutCh := time.After(timeout)
	for {
		err := a.c.Ping(a.ctx).Err()
		if err == nil {
			log.Info().Str("server", a.c.Options().Addr).Msg("Redis connection OK")
			return nil
		}
		log.Error().Err(err).Msg("failed to ping Redis server, will try again")
		select {
		case <-a.ctx.Done():
			return a.ctx.Err()
		case <-timeoutCh:
			return fmt.Errorf("failed to connect to Redis server %s: %w", a.c.Options().Addr, err)
		case <-tick.C:
		}
	}
}

func (a *Adapter) SomeoneListens(query Query) (bool, error) {
	cmd := a.c.PubSubNumSub(a.ctx, query.Channel)
	if cmd.Err() != nil {
		return false, fmt.Errorf("failed to check channel listeners: %w", cmd.Err())
	}
	return cmd.Val()[query.Channel] > 0, nil
}

func (a *Adapter) logJob(query Query, result *WorkerResult) {
	if a.jobLogger == nil {
		return
	}
	rec := results.JobLog{
		WorkerID: result.WorkerID,
		Func:     query.Func,
		Begin:    result.ProcBegin,
		End:      result.ProcEnd,
	}
	if err := result.Err(); err != nil {
		rec.Err = err.Error()
	}
	a.jobLogger.Log(rec)
}

// awaitResult waits for a single result notification and sends
// the result to ans. The ans channel is always closed. A cancelled
// context or a closed subscription produce no result.
func (a *Adapter) awaitResult(
	ctx context.Context,
	query Query,
	msgs <-chan *redis.Message,
	ans chan<- *WorkerResult,
) {
	defer close(ans)
	select {
	case <-ctx.Done():
		log.Warn().
			Str("channel", query.Channel).
			Str("func", query.Func).
			Msg("query result not received in time")
	case item, ok := <-msgs:
		if !ok {
			log.Error().
				Str("channel", query.Channel).
				Str("func", query.Func).
				Msg("result subscription closed before any result arrived")
			return
		}
		result := new(WorkerResult)
		cmd := a.c.Get(a.ctx, item.Payload)
		if cmd.Err() != nil {
			result.AttachValue(&results.ErrorResult{Func: query.Func, Error: cmd.Err().Error()})

		} else if err := json.Unmarshal([]byte(cmd.Val()), result); err != nil {
			result.AttachValue(&results.ErrorResult{Func: query.Func, Error: err.Error()})
		}
		a.logJob(query, result)
		ans <- result
	}
}

// PublishQuery publishes a new query and returns a channel
// the result will be sent to. In case the context is cancelled
// before any result arrives, the channel is closed without
// sending anything.
func (a *Adapter) PublishQuery(ctx context.Context, query Query) (<-chan *WorkerResult, error) {
	query.Channel = fmt.Sprintf("%s:%s", a.channelResultPrefix, uuid.New().String())
	log.Debug().
		Str("channel", query.Channel).
		Str("func", query.Func).
		Msg("publishing query")

	msg, err := query.ToJSON()
	if err != nil {
		return nil, err
	}
	// subscribing first so a fast worker cannot see the query inactive
	sub := a.c.Subscribe(a.ctx, query.Channel)
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, fmt.Errorf("failed to subscribe result channel: %w", err)
	}
	if err := a.c.LPush(a.ctx, a.queueKey, msg).Err(); err != nil {
		sub.Close()
		return nil, fmt.Errorf("failed to enqueue query: %w", err)
	}
	ans := make(chan *WorkerResult, 1)
	go func() {
		defer sub.Close()
		a.awaitResult(ctx, query, sub.Channel(), ans)
	}()
	return ans, a.c.Publish(a.ctx, a.channelQuery, MsgNewQuery).Err()
}

func (a *Adapter) DequeueQuery() (Query, error) {
	cmd := a.c.RPop(a.ctx, a.queueKey)
	if errors.Is(cmd.Err(), redis.Nil) {
		return Query{}, ErrorEmptyQueue

	} else if cmd.Err() != nil {
		return Query{}, fmt.Errorf("failed to dequeue query: %w", cmd.Err())
	}
	q, err := DecodeQuery(cmd.Val())
	if err != nil {
		return Query{}, fmt.Errorf("failed to deserialize query: %w", err)
	}
	return q, nil
}

func (a *Adapter) PublishResult(channelName string, value *WorkerResult) error {
	log.Debug().
		Str("channel", channelName).
		Str("resultType", value.ResultType.String()).
		Msg("publishing result")
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to serialize result: %w", err)
	}
	if err := a.c.Set(a.ctx, channelName, string(data), DefaultResultExpiration).Err(); err != nil {
		return fmt.Errorf("failed to store result: %w", err)
	}
	return a.c.Publish(a.ctx, channelName, channelName).Err()
}

// Subscribe returns a channel of notifications about
// new queries. The subscription ends with the adapter context.
func (a *Adapter) Subscribe() <-chan *redis.Message {
	sub := a.c.Subscribe(a.ctx, a.channelQuery)
	go func() {
		<-a.ctx.Done()
		sub.Close()
	}()
	return sub.Channel()
}

func (a *Adapter) Close() error {
	return a.c.Close()
}

// NewAdapter creates a new adapter. The jobLogger is optional
// and it is used on the publishing side to record processed jobs.
func NewAdapter(conf *Conf, ctx context.Context, jobLogger jobLogger) *Adapter {
	chRes := conf.ChannelResultPrefix
	chQuery := conf.ChannelQuery
	queueKey := conf.QueueKey
	if chRes == "" {
		chRes = DefaultResultChannelPrefix
		log.Warn().
			Str("channel", chRes).
			Msg("Redis channel for results not specified, using default")
	}
	if chQuery == "" {
		chQuery = DefaultQueryChannel
		log.Warn().
			Str("channel", chQuery).
			Msg("Redis channel for queries not specified, using default")
	}
	if queueKey == "" {
		queueKey = DefaultQueueKey
	}
	answerTimeout := conf.QueryAnswerTimeoutSecs
	if answerTimeout <= 0 {
		answerTimeout = DfltQueryAnswerTimeoutSecs
	}

	ans := &Adapter{
		c: redis.NewClient(&redis.Options{
			Addr:     conf.ServerInfo(),
			Password: conf.Password,
			DB:       conf.DB,
		}),
		ctx:                 ctx,
		channelQuery:        chQuery,
		channelResultPrefix: chRes,
		queueKey:            queueKey,
		cachePath:           conf.CachePath,
		queryAnswerTimeout:  time.Duration(answerTimeout) * time.Second,
		jobLogger:           jobLogger,
	}
	return ans
}
