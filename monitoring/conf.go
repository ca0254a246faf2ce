// Copyright 2024 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2024 Institute of the Czech National Corpus,
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

package monitoring

import (
	"compelometer/results"
	"context"
	"fmt"
	"time"

	"github.com/czcorpus/hltscl"
	"github.com/rs/zerolog/log"
)

// Conf configures an optional TimescaleDB database where
// statistics of processed jobs are written to.
type Conf struct {
	DB *hltscl.PgConf `json:"db"`
}

func (conf *Conf) ValidateAndDefaults(confContext string) error {
	if conf == nil {
		log.Warn().Msgf("`%s` not set, job statistics will not be stored", confContext)
		return nil
	}
	if conf.DB == nil {
		return fmt.Errorf("missing `%s.db`", confContext)
	}
	return nil
}

// StatusWriter stores information about processed jobs
type StatusWriter interface {
	Write(rec results.JobLog)
}

type NullStatusWriter struct{}

func (n *NullStatusWriter) Write(rec results.JobLog) {}

func (n *NullStatusWriter) Start(ctx context.Context) {}

func (n *NullStatusWriter) Stop(ctx context.Context) error {
	return nil
}

// ----

type StatusWriterService interface {
	StatusWriter
	Start(ctx context.Context)
	Stop(ctx context.Context) error
}

// NewStatusWriter returns a TimescaleDB based writer in case
// the database is configured. Otherwise, a writer ignoring
// all the records is returned.
func NewStatusWriter(ctx context.Context, conf *Conf, tz *time.Location) (StatusWriterService, error) {
	if conf == nil || conf.DB == nil {
		return &NullStatusWriter{}, nil
	}
	sw, err := NewTimescaleDBWriter(ctx, *conf.DB, tz)
	if err != nil {
		return nil, fmt.Errorf("failed to create status writer: %w", err)
	}
	return sw, nil
}
