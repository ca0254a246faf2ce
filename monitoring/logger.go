// Copyright 2023 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2023 Martin Zimandl <martin.zimandl@gmail.com>
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

package monitoring

import (
	"compelometer/results"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/czcorpus/cnc-gokit/collections"
	"github.com/rs/zerolog/log"
)

const (
	StaleWorkerLoadTTL = time.Hour * 24
	cleanupInterval    = 10 * time.Minute
	recentLogSize      = 100
)

var (
	ErrWorkerNotFound = errors.New("worker not found")
)

// WorkerJobLogger collects information about jobs processed
// by workers (or by the API server itself when running without
// Redis). Total per-worker loads are kept until a worker becomes
// stale, a limited number of the most recent records is kept
// for detailed inspection.
type WorkerJobLogger struct {
	loadData     WorkersLoad
	dataLock     sync.RWMutex
	recentLog    *collections.CircularList[results.JobLog]
	tz           *time.Location
	statusWriter StatusWriter
}

func (w *WorkerJobLogger) Log(rec results.JobLog) {
	w.dataLock.Lock()
	defer w.dataLock.Unlock()

	entry, ok := w.loadData[rec.WorkerID]
	if !ok {
		entry.FirstUpdate = rec.Begin
		entry.NumWorkers = 1
	}
	entry.NumJobs++
	entry.LastUpdate = rec.End
	if rec.Err != "" {
		entry.NumErrors++
	}
	entry.TotalTimeSecs += rec.TimeSpent().Seconds()
	w.loadData[rec.WorkerID] = entry
	w.recentLog.Append(rec)
	w.statusWriter.Write(rec)
}

func (w *WorkerJobLogger) TotalLoad() WorkerLoad {
	w.dataLock.RLock()
	defer w.dataLock.RUnlock()
	return w.loadData.SumLoad(w.tz)
}

func (w *WorkerJobLogger) RecentLoad() WorkerLoad {
	w.dataLock.RLock()
	defer w.dataLock.RUnlock()
	var ans WorkerLoad
	workers := collections.NewSet[string]()
	w.recentLog.ForEach(func(i int, item results.JobLog) bool {
		workers.Add(item.WorkerID)
		if i == 0 {
			ans.FirstUpdate = item.Begin
		}
		ans.LastUpdate = item.End
		if item.Err != "" {
			ans.NumErrors++
		}
		ans.NumJobs++
		ans.TotalTimeSecs += item.TimeSpent().Seconds()
		return true
	})
	ans.NumWorkers = workers.Size()
	return ans
}

func (w *WorkerJobLogger) RecentRecords() []results.JobLog {
	w.dataLock.RLock()
	defer w.dataLock.RUnlock()
	ans := make([]results.JobLog, 0, w.recentLog.Len())
	w.recentLog.ForEach(func(i int, item results.JobLog) bool {
		ans = append(ans, item)
		return true
	})
	return ans
}

func (w *WorkerJobLogger) TotalWorkerLoad(workerID string) (WorkerLoad, error) {
	w.dataLock.RLock()
	defer w.dataLock.RUnlock()
	ans, ok := w.loadData[workerID]
	if !ok {
		return ans, ErrWorkerNotFound
	}
	return ans, nil
}

func (w *WorkerJobLogger) RecentWorkerLoad(workerID string) (WorkerLoad, error) {
	w.dataLock.RLock()
	defer w.dataLock.RUnlock()
	var ans WorkerLoad
	var found bool
	w.recentLog.ForEach(func(i int, item results.JobLog) bool {
		if item.WorkerID != workerID {
			return true
		}
		if !found {
			ans.FirstUpdate = item.Begin
			found = true
		}
		ans.LastUpdate = item.End
		if item.Err != "" {
			ans.NumErrors++
		}
		ans.NumJobs++
		ans.TotalTimeSecs += item.TimeSpent().Seconds()
		return true
	})
	if found {
		ans.NumWorkers = 1
		return ans, nil
	}
	return ans, ErrWorkerNotFound
}

func (w *WorkerJobLogger) Start(ctx context.Context) {
	log.Info().Msg("starting worker job logger")
	go func() {
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("requesting worker job logger stop")
				return
			case now := <-ticker.C:
				w.dataLock.Lock()
				w.loadData.cleanOldRecords(now)
				w.dataLock.Unlock()
			}
		}
	}()
}

func (w *WorkerJobLogger) Stop(ctx context.Context) error {
	log.Info().Msg("shutting down worker job logger")
	return nil
}

func NewWorkerJobLogger(
	statusWriter StatusWriter,
	tz *time.Location,
) *WorkerJobLogger {
	if statusWriter == nil {
		statusWriter = &NullStatusWriter{}
	}
	return &WorkerJobLogger{
		loadData:     make(WorkersLoad),
		recentLog:    collections.NewCircularList[results.JobLog](recentLogSize),
		statusWriter: statusWriter,
		tz:           tz,
	}
}
