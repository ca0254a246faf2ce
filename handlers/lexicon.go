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

package handlers

import (
	"compelometer/lexicon"
	"errors"
	"net/http"

	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
)

var (
	errNoAdaptiveLexicon = errors.New("adaptive lexicon not configured")
)

type wordInfo struct {
	Word           string         `json:"word"`
	StaticPolarity int            `json:"staticPolarity"`
	Adaptive       *lexicon.Entry `json:"adaptive"`
	Polarity       float64        `json:"adaptivePolarity,omitempty"`
}

// WordInfo shows both the static polarity and the learned
// sentiment of a word.
func (a *Actions) WordInfo(ctx *gin.Context) {
	word := lexicon.Normalize(ctx.Param("word"))
	if word == "" {
		uniresp.RespondWithErrorJSON(ctx, errors.New("empty word"), http.StatusBadRequest)
		return
	}
	ans := wordInfo{
		Word:           word,
		StaticPolarity: a.static.Polarity(word),
	}
	if a.store != nil {
		entry, found, err := a.store.Entry(ctx.Request.Context(), word)
		if err != nil {
			uniresp.RespondWithErrorJSON(ctx, err, http.StatusInternalServerError)
			return
		}
		if found {
			ans.Adaptive = &entry
			ans.Polarity = entry.Polarity()
		}
	}
	uniresp.WriteJSONResponse(ctx.Writer, ans)
}

// AdaptiveEntries lists all learned words
func (a *Actions) AdaptiveEntries(ctx *gin.Context) {
	if a.store == nil {
		uniresp.RespondWithErrorJSON(ctx, errNoAdaptiveLexicon, http.StatusNotFound)
		return
	}
	entries, err := a.store.Entries(ctx.Request.Context())
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusInternalServerError)
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, map[string]any{
		"entries": entries,
		"size":    len(entries),
	})
}
