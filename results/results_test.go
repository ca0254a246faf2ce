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

package results

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormRound(t *testing.T) {
	assert.Equal(t, 0.333, NormRound(1.0/3))
	assert.Equal(t, 1.5, NormRound(1.5))
	assert.Equal(t, -0.667, NormRound(-2.0/3))
}

func TestScoreResultRounded(t *testing.T) {
	res := ScoreResult{Compellingness: 1.23456, Pathos: 2.0 / 3, Logos: 0.5, Mode: "static"}
	r := res.Rounded()
	assert.Equal(t, 1.235, r.Compellingness)
	assert.Equal(t, 0.667, r.Pathos)
	assert.Equal(t, 0.5, r.Logos)
	assert.Equal(t, 1.23456, res.Compellingness)
}

func TestErrFromResults(t *testing.T) {
	assert.NoError(t, (&ScoreResult{}).Err())
	assert.EqualError(t, (&TrainResult{Error: "failed"}).Err(), "failed")
	assert.EqualError(t, (&ErrorResult{Error: "boom"}).Err(), "boom")
	assert.Equal(t, ResultTypeError, (&ErrorResult{}).Type())
}

func TestJobLogTimeSpent(t *testing.T) {
	begin := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	jl := JobLog{Begin: begin, End: begin.Add(1500 * time.Millisecond)}
	assert.Equal(t, 1500*time.Millisecond, jl.TimeSpent())
}
