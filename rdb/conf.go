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
	"fmt"

	"github.com/rs/zerolog/log"
)

const (
	DfltPort                   = 6379
	DfltQueryAnswerTimeoutSecs = 60
)

// Conf configures the Redis connection used for the job queue,
// the result channels and (optionally) the adaptive lexicon.
type Conf struct {
	Host                   string `json:"host"`
	Port                   int    `json:"port"`
	DB                     int    `json:"db"`
	Password               string `json:"password"`
	ChannelQuery           string `json:"channelQuery"`
	ChannelResultPrefix    string `json:"channelResultPrefix"`
	QueueKey               string `json:"queueKey"`
	QueryAnswerTimeoutSecs int    `json:"queryAnswerTimeoutSecs"`

	// CachePath is an optional directory for caching
	// results of static scoring
	CachePath string `json:"cachePath"`
}

func (conf *Conf) ServerInfo() string {
	return fmt.Sprintf("%s:%d", conf.Host, conf.Port)
}

func (conf *Conf) ValidateAndDefaults(confContext string) error {
	if conf == nil {
		return fmt.Errorf("missing configuration section `%s`", confContext)
	}
	if conf.Host == "" {
		return fmt.Errorf("missing `%s.host`", confContext)
	}
	if conf.Port == 0 {
		conf.Port = DfltPort
		log.Warn().Int("value", DfltPort).Msgf("`%s.port` not set, using default", confContext)
	}
	if conf.ChannelQuery == "" {
		conf.ChannelQuery = DefaultQueryChannel
		log.Warn().
			Str("channel", DefaultQueryChannel).
			Msgf("`%s.channelQuery` not set, using default", confContext)
	}
	if conf.ChannelResultPrefix == "" {
		conf.ChannelResultPrefix = DefaultResultChannelPrefix
		log.Warn().
			Str("channel", DefaultResultChannelPrefix).
			Msgf("`%s.channelResultPrefix` not set, using default", confContext)
	}
	if conf.QueueKey == "" {
		conf.QueueKey = DefaultQueueKey
		log.Warn().
			Str("key", DefaultQueueKey).
			Msgf("`%s.queueKey` not set, using default", confContext)
	}
	if conf.QueryAnswerTimeoutSecs <= 0 {
		conf.QueryAnswerTimeoutSecs = DfltQueryAnswerTimeoutSecs
		log.Warn().
			Int("value", DfltQueryAnswerTimeoutSecs).
			Msgf("`%s.queryAnswerTimeoutSecs` not set, using default", confContext)
	}
	return nil
}
