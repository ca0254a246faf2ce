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

package results

import (
	"errors"
	"math"
	"time"
)

const (
	ResultTypeScore ResultType = "score"
	ResultTypeTrain ResultType = "train"
	ResultTypeError ResultType = "error"
)

type ResultType string

func (rt ResultType) String() string {
	return string(rt)
}

// SerializableResult is any result a worker can send back
// to the API server
type SerializableResult interface {
	Err() error
	Type() ResultType
}

// ----

type ErrorResult struct {
	Func  string `json:"func"`
	Error string `json:"error"`
}

func (res *ErrorResult) Err() error {
	if res.Error == "" {
		return nil
	}
	return errors.New(res.Error)
}

func (res *ErrorResult) Type() ResultType {
	return ResultTypeError
}

// ----

type JobLog struct {
	WorkerID string    `json:"workerId"`
	Func     string    `json:"func"`
	Begin    time.Time `json:"begin"`
	End      time.Time `json:"end"`
	Err      string    `json:"error,omitempty"`
}

func (jl JobLog) TimeSpent() time.Duration {
	return jl.End.Sub(jl.Begin)
}

// NormRound performs a normalized rounding to
// the three decimal places so we can provide
// consistent rounding across all the results
func NormRound(val float64) float64 {
	return math.Round(val*1000) / 1000
}
