// Copyright 2019 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2019 Institute of the Czech National Corpus,
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

package cnf

import (
	"compelometer/lexicon"
	"compelometer/logos"
	"compelometer/monitoring"
	"compelometer/nlp"
	"compelometer/rdb"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/rs/zerolog/log"
)

const (
	dfltListenAddress          = "127.0.0.1"
	dfltListenPort             = 8090
	dfltServerReadTimeoutSecs  = 30
	dfltServerWriteTimeoutSecs = 60
	dfltWorkerJobTimeoutSecs   = 30
	dfltTimeZone               = "Europe/Prague"
)

// Conf is a global configuration of the app
type Conf struct {
	ListenAddress          string              `json:"listenAddress"`
	PublicURL              string              `json:"publicUrl"`
	ListenPort             int                 `json:"listenPort"`
	ServerReadTimeoutSecs  int                 `json:"serverReadTimeoutSecs"`
	ServerWriteTimeoutSecs int                 `json:"serverWriteTimeoutSecs"`
	CorsAllowedOrigins     []string            `json:"corsAllowedOrigins"`
	AuthHeaderName         string              `json:"authHeaderName"`
	AuthTokens             []string            `json:"authTokens"`
	Logging                logging.LoggingConf `json:"logging"`
	TimeZone               string              `json:"timeZone"`

	// Redis is optional. Without it, the API server
	// scores texts by itself and no workers are needed.
	Redis *rdb.Conf `json:"redis"`

	Lexicon    *lexicon.Conf    `json:"lexicon"`
	NLP        *nlp.Conf        `json:"nlp"`
	Logos      logos.Config     `json:"logos"`
	Monitoring *monitoring.Conf `json:"monitoring"`

	WorkerJobTimeoutSecs int `json:"workerJobTimeoutSecs"`

	srcPath string
}

func (conf *Conf) IsDebugMode() bool {
	return conf.Logging.Level.IsDebugMode()
}

func (conf *Conf) UsesRedis() bool {
	return conf.Redis != nil
}

func (conf *Conf) WorkerJobTimeout() time.Duration {
	return time.Duration(conf.WorkerJobTimeoutSecs) * time.Second
}

func (conf *Conf) TimezoneLocation() *time.Location {
	// we can ignore the error here as we always call c.Validate()
	// first (which also tries to load the location and report possible
	// error)
	loc, _ := time.LoadLocation(conf.TimeZone)
	return loc
}

// GetSourcePath returns an absolute path of a file
// the config was loaded from.
func (conf *Conf) GetSourcePath() string {
	if filepath.IsAbs(conf.srcPath) {
		return conf.srcPath
	}
	var cwd string
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "[failed to get working dir]"
	}
	return filepath.Join(cwd, conf.srcPath)
}

func LoadConfig(path string) *Conf {
	if path == "" {
		log.Fatal().Msg("Cannot load config - path not specified")
	}
	rawData, err := os.ReadFile(path)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot load config")
	}
	var conf Conf
	conf.srcPath = path
	err = json.Unmarshal(rawData, &conf)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot load config")
	}
	return &conf
}

func validateAndDefaults(conf *Conf) error {
	if conf.ListenAddress == "" {
		conf.ListenAddress = dfltListenAddress
		log.Warn().Str("value", dfltListenAddress).Msg("listenAddress not specified, using default")
	}
	if conf.ListenPort == 0 {
		conf.ListenPort = dfltListenPort
		log.Warn().Int("value", dfltListenPort).Msg("listenPort not specified, using default")
	}
	if conf.ServerReadTimeoutSecs == 0 {
		conf.ServerReadTimeoutSecs = dfltServerReadTimeoutSecs
		log.Warn().Msgf(
			"serverReadTimeoutSecs not specified, using default: %d",
			dfltServerReadTimeoutSecs,
		)
	}
	if conf.ServerWriteTimeoutSecs == 0 {
		conf.ServerWriteTimeoutSecs = dfltServerWriteTimeoutSecs
		log.Warn().Msgf(
			"serverWriteTimeoutSecs not specified, using default: %d",
			dfltServerWriteTimeoutSecs,
		)
	}
	if conf.PublicURL == "" {
		conf.PublicURL = fmt.Sprintf("http://%s:%d", conf.ListenAddress, conf.ListenPort)
		log.Warn().Str("address", conf.PublicURL).Msg("publicUrl not set, using listenAddress")
	}
	if conf.AuthHeaderName != "" && len(conf.AuthTokens) == 0 {
		return fmt.Errorf("authHeaderName set but no authTokens provided")
	}
	if conf.WorkerJobTimeoutSecs == 0 {
		conf.WorkerJobTimeoutSecs = dfltWorkerJobTimeoutSecs
		log.Warn().Msgf(
			"workerJobTimeoutSecs not specified, using default: %d",
			dfltWorkerJobTimeoutSecs,
		)
	}

	if conf.Lexicon == nil {
		conf.Lexicon = &lexicon.Conf{}
	}
	if err := conf.Lexicon.ValidateAndDefaults("lexicon"); err != nil {
		return err
	}
	if conf.NLP == nil {
		conf.NLP = &nlp.Conf{}
	}
	if err := conf.NLP.ValidateAndDefaults("nlp"); err != nil {
		return err
	}
	if conf.Redis != nil {
		if err := conf.Redis.ValidateAndDefaults("redis"); err != nil {
			return err
		}

	} else {
		log.Warn().Msg("redis not configured, texts will be scored directly by the API server")
		if conf.Lexicon.StoreBackend == lexicon.BackendRedis {
			return fmt.Errorf("lexicon.storeBackend `redis` requires the `redis` section")
		}
	}
	if err := conf.Monitoring.ValidateAndDefaults("monitoring"); err != nil {
		return err
	}
	if conf.Logos.Unclamped {
		log.Warn().Msg("logos.unclamped enabled, logos score may exceed 1.0")
	}

	if conf.TimeZone == "" {
		conf.TimeZone = dfltTimeZone
		log.Warn().
			Str("timeZone", dfltTimeZone).
			Msg("time zone not specified, using default")
	}
	if _, err := time.LoadLocation(conf.TimeZone); err != nil {
		return fmt.Errorf("invalid time zone: %w", err)
	}
	return nil
}

func ValidateAndDefaults(conf *Conf) {
	if err := validateAndDefaults(conf); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
}
