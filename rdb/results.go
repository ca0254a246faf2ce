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
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// WorkerResult is an envelope of any result sent by a worker
// back to the API server
type WorkerResult struct {
	ID           string             `json:"id"`
	WorkerID     string             `json:"workerId"`
	ResultType   results.ResultType `json:"resultType"`
	Value        json.RawMessage    `json:"value"`
	HasUserError bool               `json:"hasUserError"`
	ProcBegin    time.Time          `json:"procBegin"`
	ProcEnd      time.Time          `json:"procEnd"`
}

// AttachValue serializes the value into the envelope and
// sets the matching result type.
func (wr *WorkerResult) AttachValue(value results.SerializableResult) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to attach value to worker result: %w", err)
	}
	wr.Value = data
	wr.ResultType = value.Type()
	return nil
}

// Err returns an error stored in the attached value (if any).
func (wr *WorkerResult) Err() error {
	if wr.ResultType != results.ResultTypeError {
		return nil
	}
	var ans results.ErrorResult
	if err := json.Unmarshal(wr.Value, &ans); err != nil {
		return fmt.Errorf("failed to decode error result: %w", err)
	}
	if ans.Error == "" {
		return errors.New("unspecified worker error")
	}
	return errors.New(ans.Error)
}

// DecodeValue unmarshals the attached value to the provided
// result. The result type must match.
func (wr *WorkerResult) DecodeValue(target results.SerializableResult) error {
	if wr.ResultType != target.Type() {
		if err := wr.Err(); err != nil {
			return err
		}
		return fmt.Errorf(
			"unexpected worker result type %s (expected %s)", wr.ResultType, target.Type())
	}
	if err := json.Unmarshal(wr.Value, target); err != nil {
		return fmt.Errorf("failed to decode worker result: %w", err)
	}
	return nil
}

func CreateWorkerResult(value results.SerializableResult) (*WorkerResult, error) {
	ans := new(WorkerResult)
	if err := ans.AttachValue(value); err != nil {
		return nil, err
	}
	return ans, nil
}
