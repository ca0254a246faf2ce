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
	"fmt"
	"math"
)

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// scoreLevel maps a score to one of four bands
// (<=0.25, <=0.75, <=1.25, above)
func scoreLevel(v float64) int {
	switch {
	case v <= 0.25:
		return 0
	case v <= 0.75:
		return 1
	case v <= 1.25:
		return 2
	}
	return 3
}

var (
	compellingnessDescs = [4]string{
		"This text is not significantly compelling.",
		"This text is somewhat compelling.",
		"This text is very compelling.",
		"This text achieved the highest compellingness score category.",
	}

	pathosDescs = [4]string{
		"This text does not use pathos as a significant tool for persuasion.",
		"This text may use pathos to convince the reader of its argument.",
		"This text is rich in its use of pathos.",
		"This text exemplifies the use of pathos.",
	}

	logosDescs = [4]string{
		"This text does not use logos as a significant tool for persuasion.",
		"This text may use logos to convince the reader of its argument. Always cross-check " +
			"facts and figures found online with reputed and unbiased sources of information.",
		"This text is rich in its use of logos. Always cross-check facts and figures online " +
			"with reputed and unbiased sources of information.",
		"This text exemplifies the use of logos. Always cross-check facts and figures online " +
			"with reputed and unbiased sources of information.",
	}
)

const (
	negativeDesc = "This text has some negative sentiment present. " +
		"This indicates that the text may be attempting to convince you against something"
	nonNegativeDesc = "This text does not have negative sentiment present. " +
		"This indicates that the text may be attempting to convince you for something"
)

// Describe provides human readable interpretation of the scores
func Describe(res results.ScoreResult) results.Descriptions {
	ans := results.Descriptions{
		Summary: fmt.Sprintf(
			"The compellingness score for the text was: %v\n"+
				"The pathos score for the text was: %v\n"+
				"The logos score for the text was: %v\n",
			round2(res.Compellingness), round2(res.Pathos), round2(res.Logos),
		),
		Compellingness: compellingnessDescs[scoreLevel(res.Compellingness)],
		Pathos:         pathosDescs[scoreLevel(res.Pathos)],
		Logos:          logosDescs[scoreLevel(res.Logos)],
		Sentiment:      nonNegativeDesc,
	}
	if res.NegativePresent {
		ans.Sentiment = negativeDesc
	}
	return ans
}
