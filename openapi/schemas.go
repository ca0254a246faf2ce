// Copyright 2024 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2024 Martin Zimandl <martin.zimandl@gmail.com>
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

package openapi

func numberProp(desc string) ObjectProperty {
	return ObjectProperty{Type: "number", Description: desc}
}

func createSchemas() map[string]ObjectProperties {
	ans := make(map[string]ObjectProperties)
	ans["Descriptions"] = ObjectProperties{
		"summary":        ObjectProperty{Type: "string"},
		"compellingness": ObjectProperty{Type: "string"},
		"pathos":         ObjectProperty{Type: "string"},
		"logos":          ObjectProperty{Type: "string"},
		"sentiment":      ObjectProperty{Type: "string"},
	}
	ans["ScoreResult"] = ObjectProperties{
		"compellingness": numberProp("combined score within [0, 2]"),
		"pathos":         numberProp("emotional appeal, average absolute sentiment of sentiment bearing words"),
		"logos":          numberProp("reasoning appeal, 0 for texts without reasoning cues"),
		"negativePresent": ObjectProperty{
			Type:        "boolean",
			Description: "true if any word ended up with a negative sentiment",
		},
		"mode": ObjectProperty{
			Type: "string",
			Enum: []string{"static", "adaptive"},
		},
		"learned": ObjectProperty{
			Type:        "array",
			Items:       &arrayItem{Type: "string"},
			Description: "words with updated adaptive sentiment",
		},
		"learnError": ObjectProperty{
			Type:        "string",
			Description: "reported in case the adaptive lexicon update failed",
		},
		"descriptions": ObjectProperty{
			Type:       "object",
			Properties: ans["Descriptions"],
		},
	}
	ans["TrainResult"] = ObjectProperties{
		"sentences": numberProp("number of processed sentences"),
		"learnedWords": ObjectProperty{
			Type:  "array",
			Items: &arrayItem{Type: "string"},
		},
		"numFailed": numberProp("number of sentences (or lexicon updates) which failed"),
	}
	ans["LexiconEntry"] = ObjectProperties{
		"word":         ObjectProperty{Type: "string"},
		"sentimentSum": numberProp("sum of all the observed contributions"),
		"observations": numberProp("number of observations"),
	}
	ans["WordInfo"] = ObjectProperties{
		"word":             ObjectProperty{Type: "string"},
		"staticPolarity":   numberProp("-1, 0 or 1"),
		"adaptive":         ObjectProperty{Type: "object", Properties: ans["LexiconEntry"]},
		"adaptivePolarity": numberProp("learned average sentiment"),
	}
	ans["TextRequest"] = ObjectProperties{
		"text": ObjectProperty{Type: "string"},
		"mode": ObjectProperty{
			Type: "string",
			Enum: []string{"static", "adaptive"},
		},
	}
	return ans
}
