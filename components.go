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

package main

import (
	"compelometer/cnf"
	"compelometer/lexicon"
	"compelometer/logos"
	"compelometer/nlp"
	"compelometer/rdb"
	"compelometer/scoring"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// components are the parts of the scoring shared by all
// the actions (server, worker, CLI)
type components struct {
	static *lexicon.Static
	store  lexicon.Store
	engine *scoring.Engine
}

func (c *components) Close() {
	if c.store != nil {
		if err := c.store.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close adaptive lexicon")
		}
	}
}

// newComponents loads lexicons and creates the scoring engine.
// The Redis adapter is optional unless the adaptive lexicon
// uses the Redis backend.
func newComponents(conf *cnf.Conf, radapter *rdb.Adapter) (*components, error) {
	static, err := lexicon.LoadStatic(conf.Lexicon.PositiveWordsPath, conf.Lexicon.NegativeWordsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load static lexicon: %w", err)
	}
	cues, err := lexicon.LoadCues(conf.Lexicon.ReasoningCuesPath)
	if err != nil {
		return nil, err
	}
	var rc redis.UniversalClient
	if radapter != nil {
		rc = radapter.Client()
	}
	store, err := lexicon.OpenStore(conf.Lexicon, rc)
	if err != nil {
		return nil, fmt.Errorf("failed to open adaptive lexicon: %w", err)
	}
	log.Info().
		Int("staticWords", static.Len()).
		Int("reasoningCues", len(cues.Phrases())).
		Str("storeBackend", conf.Lexicon.StoreBackend).
		Str("parser", conf.NLP.Parser).
		Msg("scoring components ready")
	return &components{
		static: static,
		store:  store,
		engine: scoring.NewEngine(
			static,
			store,
			logos.NewEstimator(cues, conf.Logos),
			nlp.NewParser(conf.NLP),
			nlp.ProseTagger{},
		),
	}, nil
}
