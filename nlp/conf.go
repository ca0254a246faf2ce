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

package nlp

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

const (
	ParserProse  = "prose"
	ParserRemote = "remote"
)

type Conf struct {

	// Parser is either `prose` (local, default) or `remote`
	Parser             string `json:"parser"`
	ParserURL          string `json:"parserUrl"`
	RequestTimeoutSecs int    `json:"requestTimeoutSecs"`
}

func (conf *Conf) ValidateAndDefaults(confContext string) error {
	if conf == nil {
		return fmt.Errorf("missing configuration section `%s`", confContext)
	}
	switch conf.Parser {
	case "":
		conf.Parser = ParserProse
		log.Warn().
			Str("value", ParserProse).
			Msgf("`%s.parser` not set, using default", confContext)
	case ParserProse:
	case ParserRemote:
		if conf.ParserURL == "" {
			return fmt.Errorf("missing `%s.parserUrl` for the remote parser", confContext)
		}
		if conf.RequestTimeoutSecs == 0 {
			conf.RequestTimeoutSecs = dfltRequestTimeoutSecs
			log.Warn().
				Int("value", dfltRequestTimeoutSecs).
				Msgf("`%s.requestTimeoutSecs` not set, using default", confContext)
		}
	default:
		return fmt.Errorf("invalid `%s.parser`: %s", confContext, conf.Parser)
	}
	return nil
}

// NewParser creates a configured parser. Tagging is always local.
func NewParser(conf *Conf) Parser {
	if conf.Parser == ParserRemote {
		return NewRemoteParser(conf.ParserURL, conf.RequestTimeoutSecs)
	}
	return ProseParser{}
}
