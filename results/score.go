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

package results

import (
	"errors"
)

// Descriptions are human readable interpretations
// of individual scores.
type Descriptions struct {
	Summary        string `json:"summary"`
	Compellingness string `json:"compellingness"`
	Pathos         string `json:"pathos"`
	Logos          string `json:"logos"`
	Sentiment      string `json:"sentiment,omitempty"`
}

type ScoreResult struct {
	Compellingness  float64 `json:"compellingness"`
	Pathos          float64 `json:"pathos"`
	Logos           float64 `json:"logos"`
	NegativePresent bool    `json:"negativePresent"`
	Mode            string  `json:"mode"`

	// Learned lists words which had their adaptive
	// sentiment updated (adaptive mode only)
	Learned []string `json:"learned,omitempty"`

	// LearnError reports failed updates of the adaptive
	// lexicon. The scores are valid even in such case.
	LearnError string `json:"learnError,omitempty"`

	Descriptions *Descriptions `json:"descriptions,omitempty"`

	Error string `json:"error,omitempty"`
}

func (res *ScoreResult) Err() error {
	if res.Error == "" {
		return nil
	}
	return errors.New(res.Error)
}

func (res *ScoreResult) Type() ResultType {
	return ResultTypeScore
}

// Rounded returns a copy with all scores rounded by NormRound
func (res ScoreResult) Rounded() ScoreResult {
	res.Compellingness = NormRound(res.Compellingness)
	res.Pathos = NormRound(res.Pathos)
	res.Logos = NormRound(res.Logos)
	return res
}

// ----

type TrainResult struct {
	Sentences    int      `json:"sentences"`
	LearnedWords []string `json:"learnedWords"`
	NumFailed    int      `json:"numFailed"`
	Error        string   `json:"error,omitempty"`
}

func (res *TrainResult) Err() error {
	if res.Error == "" {
		return nil
	}
	return errors.New(res.Error)
}

func (res *TrainResult) Type() ResultType {
	return ResultTypeTrain
}
