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

package scoring

import (
	"compelometer/results"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescribe(t *testing.T) {
	d := Describe(results.ScoreResult{
		Compellingness:  1.5,
		Pathos:          1.0,
		Logos:           0.333333,
		NegativePresent: true,
	})
	assert.Equal(
		t,
		"The compellingness score for the text was: 1.5\n"+
			"The pathos score for the text was: 1\n"+
			"The logos score for the text was: 0.33\n",
		d.Summary,
	)
	assert.Equal(t, "This text achieved the highest compellingness score category.", d.Compellingness)
	assert.Equal(t, "This text is rich in its use of pathos.", d.Pathos)
	assert.Equal(t, logosDescs[1], d.Logos)
	assert.Equal(t, negativeDesc, d.Sentiment)
}

func TestDescribeBoundaries(t *testing.T) {
	assert.Equal(t, 0, scoreLevel(0))
	assert.Equal(t, 0, scoreLevel(0.25))
	assert.Equal(t, 1, scoreLevel(0.26))
	assert.Equal(t, 1, scoreLevel(0.75))
	assert.Equal(t, 2, scoreLevel(1.25))
	assert.Equal(t, 3, scoreLevel(2))

	d := Describe(results.ScoreResult{})
	assert.Equal(t, "This text is not significantly compelling.", d.Compellingness)
	assert.Equal(t, nonNegativeDesc, d.Sentiment)
}
