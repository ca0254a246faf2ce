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

package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	StatusOK        = "ok"
	StatusUserError = "user_error"
	StatusError     = "error"
)

var (
	// ScoredTexts counts scoring requests by mode and result status
	ScoredTexts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "compelometer_scored_texts_total",
			Help: "Total scored texts by mode and status",
		},
		[]string{"mode", "status"},
	)

	ScoreDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "compelometer_score_duration_seconds",
			Help:    "Scoring duration in seconds (including waiting for a worker)",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"mode"},
	)

	TrainedSentences = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "compelometer_trained_sentences_total",
			Help: "Total sentences processed by training",
		},
	)

	LearnedWords = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "compelometer_learned_words_total",
			Help: "Total updates of the adaptive lexicon",
		},
	)

	WorkerTimeouts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "compelometer_worker_timeouts_total",
			Help: "Total requests not answered by a worker in time",
		},
	)

	// ParserBreakerState is the remote parser circuit breaker
	// state (0=closed, 1=half-open, 2=open)
	ParserBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "compelometer_parser_circuit_breaker_state",
			Help: "Current remote parser circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
	)
)

func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
