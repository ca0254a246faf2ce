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

package nlp

import (
	"bytes"
	"compelometer/metrics"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/czcorpus/cnc-gokit/httpclient"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
)

const (
	dfltIdleConnTimeoutSecs = 60
	dfltRequestTimeoutSecs  = 10

	breakerMaxFailures = 5
	breakerOpenSecs    = 30
)

var (
	ErrParserUnavailable = errors.New("dependency parser unavailable")
)

type parseRequest struct {
	Text string `json:"text"`
}

type parseResponse struct {
	Annotations []Annotation `json:"annotations"`
	Error       string       `json:"error,omitempty"`
}

// RemoteParser calls an external dependency parsing service.
// The service is expected to accept `{"text": "..."}` via POST
// and respond with `{"annotations": [{"word": ..., "dep": ...,
// "head": ..., "pos": ..., "children": [...]}]}`.
//
// After several consecutive failures of the service, the parser
// stops calling it for a while and fails immediately.
type RemoteParser struct {
	parserURL string
	client    *http.Client
	breaker   *gobreaker.CircuitBreaker
}

func (rp *RemoteParser) Parse(ctx context.Context, clause string) ([]Annotation, error) {
	ans, err := rp.breaker.Execute(func() (any, error) {
		return rp.parse(ctx, clause)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %s", ErrParserUnavailable, err)

	} else if err != nil {
		return nil, err
	}
	return ans.([]Annotation), nil
}

func (rp *RemoteParser) parse(ctx context.Context, clause string) ([]Annotation, error) {
	body, err := json.Marshal(parseRequest{Text: clause})
	if err != nil {
		return nil, fmt.Errorf("failed to encode parser request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rp.parserURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create parser request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := rp.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrParserUnavailable, err)
	}
	defer resp.Body.Close()
	rawResp, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read parser response: %w", err)
	}
	var ans parseResponse
	if err := json.Unmarshal(rawResp, &ans); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("%w: status %d", ErrParserUnavailable, resp.StatusCode)
		}
		return nil, fmt.Errorf("failed to decode parser response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d (%s)", ErrParserUnavailable, resp.StatusCode, ans.Error)
	}
	return ans.Annotations, nil
}

func NewRemoteParser(parserURL string, requestTimeoutSecs int) *RemoteParser {
	if requestTimeoutSecs <= 0 {
		requestTimeoutSecs = dfltRequestTimeoutSecs
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConns = httpclient.TransportMaxIdleConns
	transport.MaxConnsPerHost = httpclient.TransportMaxConnsPerHost
	transport.MaxIdleConnsPerHost = httpclient.TransportMaxIdleConnsPerHost
	transport.IdleConnTimeout = time.Duration(dfltIdleConnTimeoutSecs) * time.Second
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "remote-parser",
		Timeout: breakerOpenSecs * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerMaxFailures
		},
		// only an unreachable service counts as a failure
		IsSuccessful: func(err error) bool {
			return err == nil || !errors.Is(err, ErrParserUnavailable)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("component", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("parser circuit breaker state changed")
			metrics.ParserBreakerState.Set(float64(to))
		},
	})
	return &RemoteParser{
		parserURL: parserURL,
		breaker:   breaker,
		client: &http.Client{
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
			Timeout:   time.Duration(requestTimeoutSecs) * time.Second,
			Transport: transport,
		},
	}
}
