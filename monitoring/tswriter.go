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
	"time"

	"github.com/czcorpus/hltscl"
	"github.com/rs/zerolog/log"
)

const (
	opsStatsTable    = "compelometer_operations_stats"
	calledFuncsTable = "compelometer_called_funcs"
)

/*
Expected tables:

create table compelometer_operations_stats (
  "time" timestamp with time zone NOT NULL,
  num_jobs int,
  num_errors int,
  duration_secs float
);
select create_hypertable('compelometer_operations_stats', 'time');

create table compelometer_called_funcs (
	"time" timestamp with time zone NOT NULL,
	func text,
	num_calls int
);
select create_hypertable('compelometer_called_funcs', 'time');

*/

type TimescaleDBWriter struct {
	tableWriter   *hltscl.TableWriter
	opsDataCh     chan<- hltscl.Entry
	errCh         <-chan hltscl.WriteError
	fnTableWriter *hltscl.TableWriter
	fnDataCh      chan<- hltscl.Entry
	fnErrCh       <-chan hltscl.WriteError
	location      *time.Location
}

func (sw *TimescaleDBWriter) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("about to close StatusWriter")
				return
			case err := <-sw.errCh:
				log.Error().
					Err(err.Err).
					Str("entry", err.Entry.String()).
					Str("table", opsStatsTable).
					Msg("error writing data to TimescaleDB")
			case err := <-sw.fnErrCh:
				log.Error().
					Err(err.Err).
					Str("entry", err.Entry.String()).
					Str("table", calledFuncsTable).
					Msg("error writing data to TimescaleDB")
			}
		}
	}()
}

func (sw *TimescaleDBWriter) Stop(ctx context.Context) error {
	log.Warn().Msg("stopping StatusWriter")
	return nil
}

func (sw *TimescaleDBWriter) Write(item results.JobLog) {
	var numErr int
	if item.Err != "" {
		numErr++
	}
	now := time.Now().In(sw.location)
	sw.opsDataCh <- *sw.tableWriter.NewEntry(now).
		Int("num_jobs", 1).
		Int("num_errors", numErr).
		Float("duration_secs", item.TimeSpent().Seconds())

	sw.fnDataCh <- *sw.fnTableWriter.NewEntry(now).
		Str("func", item.Func).
		Int("num_calls", 1)
}

func NewTimescaleDBWriter(
	ctx context.Context,
	conf hltscl.PgConf,
	tz *time.Location,
) (*TimescaleDBWriter, error) {

	conn, err := hltscl.CreatePool(conf)
	if err != nil {
		return nil, err
	}
	twriter := hltscl.NewTableWriter(conn, opsStatsTable, "time", tz)
	opsDataCh, errCh := twriter.Activate(
		ctx,
		hltscl.WithTimeout(20*time.Second),
	)

	fnwriter := hltscl.NewTableWriter(conn, calledFuncsTable, "time", tz)
	fnDataCh, fnErrCh := fnwriter.Activate(
		ctx,
		hltscl.WithTimeout(20*time.Second),
	)

	return &TimescaleDBWriter{
		tableWriter:   twriter,
		opsDataCh:     opsDataCh,
		errCh:         errCh,
		fnTableWriter: fnwriter,
		fnDataCh:      fnDataCh,
		fnErrCh:       fnErrCh,
		location:      tz,
	}, nil
}
