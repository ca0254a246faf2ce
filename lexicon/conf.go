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

package lexicon

import (
	"fmt"

	"github.com/czcorpus/cnc-gokit/fs"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"

	DfltSQLitePath = "compelometer-lexicon.db"
)

// Conf configures both the static lexicon files and
// the adaptive store. All the paths are optional.
type Conf struct {
	PositiveWordsPath string `json:"positiveWordsPath"`
	NegativeWordsPath string `json:"negativeWordsPath"`
	ReasoningCuesPath string `json:"reasoningCuesPath"`

	// StoreBackend is either `sqlite` (default) or `redis`
	StoreBackend   string `json:"storeBackend"`
	SQLitePath     string `json:"sqlitePath"`
	RedisKeyPrefix string `json:"redisKeyPrefix"`
}

func checkOptionalFile(path, confContext, key string) error {
	if path == "" {
		return nil
	}
	isFile, err := fs.IsFile(path)
	if err != nil {
		return fmt.Errorf("failed to test `%s.%s`: %w", confContext, key, err)
	}
	if !isFile {
		return fmt.Errorf("`%s.%s` is not a file", confContext, key)
	}
	return nil
}

func (conf *Conf) ValidateAndDefaults(confContext string) error {
	if conf == nil {
		return fmt.Errorf("missing configuration section `%s`", confContext)
	}
	if err := checkOptionalFile(conf.PositiveWordsPath, confContext, "positiveWordsPath"); err != nil {
		return err
	}
	if err := checkOptionalFile(conf.NegativeWordsPath, confContext, "negativeWordsPath"); err != nil {
		return err
	}
	if err := checkOptionalFile(conf.ReasoningCuesPath, confContext, "reasoningCuesPath"); err != nil {
		return err
	}
	if conf.PositiveWordsPath == "" || conf.NegativeWordsPath == "" {
		log.Warn().Msgf("`%s` word lists not fully specified, using built-in lists", confContext)
	}
	switch conf.StoreBackend {
	case "":
		conf.StoreBackend = BackendSQLite
		log.Warn().
			Str("value", BackendSQLite).
			Msgf("`%s.storeBackend` not set, using default", confContext)
	case BackendSQLite, BackendRedis:
	default:
		return fmt.Errorf("invalid `%s.storeBackend`: %s", confContext, conf.StoreBackend)
	}
	if conf.StoreBackend == BackendSQLite && conf.SQLitePath == "" {
		conf.SQLitePath = DfltSQLitePath
		log.Warn().
			Str("value", DfltSQLitePath).
			Msgf("`%s.sqlitePath` not set, using default", confContext)
	}
	if conf.StoreBackend == BackendRedis && conf.RedisKeyPrefix == "" {
		conf.RedisKeyPrefix = DefaultRedisKeyPrefix
		log.Warn().
			Str("value", DefaultRedisKeyPrefix).
			Msgf("`%s.redisKeyPrefix` not set, using default", confContext)
	}
	return nil
}

// OpenStore opens the configured adaptive store. The Redis client
// is required only for the `redis` backend.
func OpenStore(conf *Conf, rc redis.UniversalClient) (Store, error) {
	switch conf.StoreBackend {
	case BackendRedis:
		if rc == nil {
			return nil, fmt.Errorf("redis lexicon backend requires a configured Redis connection")
		}
		return NewRedisStore(rc, conf.RedisKeyPrefix), nil
	case BackendSQLite, "":
		path := conf.SQLitePath
		if path == "" {
			path = DfltSQLitePath
		}
		return OpenSQLiteStore(path)
	default:
		return nil, fmt.Errorf("unknown lexicon store backend `%s`", conf.StoreBackend)
	}
}
