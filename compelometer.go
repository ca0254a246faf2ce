// Copyright 2023 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2023 Martin Zimandl <martin.zimandl@gmail.com>
// Copyright 2023 Institute of the Czech National Corpus,
//                Faculty of Arts, Charles University
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/czcorpus/cnc-gokit/collections"
	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"compelometer/cnf"
	"compelometer/handlers"
)

const (
	redisConnectionTestTimeout = 120 * time.Second
)

var (
	version   string
	buildDate string
	gitCommit string
)

type service interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
}

func getEnv(name string) string {
	for _, p := range os.Environ() {
		items := strings.SplitN(p, "=", 2)
		if len(items) == 2 && items[0] == name {
			return items[1]
		}
	}
	return ""
}

func getRequestOrigin(ctx *gin.Context) string {
	currOrigin, ok := ctx.Request.Header["Origin"]
	if ok {
		return currOrigin[0]
	}
	return ""
}

func additionalLogEvents() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		logging.AddLogEvent(ctx, "userAgent", ctx.Request.UserAgent())
		if mode := ctx.Query("mode"); mode != "" {
			logging.AddLogEvent(ctx, "mode", mode)
		}
		ctx.Next()
	}
}

func CORSMiddleware(conf *cnf.Conf) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var allowedOrigin string
		currOrigin := getRequestOrigin(ctx)
		for _, origin := range conf.CorsAllowedOrigins {
			if currOrigin == origin || origin == "*" {
				allowedOrigin = currOrigin
				break
			}
		}
		if allowedOrigin != "" {
			ctx.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			ctx.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			ctx.Writer.Header().Set(
				"Access-Control-Allow-Headers",
				"Content-Type, Content-Length, Accept-Encoding, Authorization, Accept, Origin, Cache-Control, X-Requested-With",
			)
			ctx.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")
		}

		if ctx.Request.Method == "OPTIONS" {
			ctx.AbortWithStatus(http.StatusNoContent)
			return
		}
		ctx.Next()
	}
}

func AuthRequired(conf *cnf.Conf) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if len(conf.AuthHeaderName) > 0 && !collections.SliceContains(conf.AuthTokens, ctx.GetHeader(conf.AuthHeaderName)) {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		ctx.Next()
	}
}

func cleanVersionInfo(v string) string {
	return strings.TrimLeft(strings.Trim(v, "'"), "v")
}

func setupLogging(conf *cnf.Conf, action string) {
	switch action {
	case "worker":
		lconf := conf.Logging
		if lconf.Path != "" {
			lconf.Path = filepath.Join(filepath.Dir(lconf.Path), "worker.log")
		}
		logging.SetupLogging(lconf)
		log.Logger = log.Logger.With().Str("worker", getWorkerID()).Logger()
	case "server":
		logging.SetupLogging(conf.Logging)
	default:
		// CLI actions write results to stdout so logging goes to stderr
		lconf := conf.Logging
		lconf.Path = ""
		logging.SetupLogging(lconf)
	}
}

func main() {
	version := handlers.VersionInfo{
		Version:   cleanVersionInfo(version),
		BuildDate: cleanVersionInfo(buildDate),
		GitCommit: cleanVersionInfo(gitCommit),
	}
	cliOpts := new(cliOptions)
	flag.StringVar(&cliOpts.mode, "mode", "static", "scoring mode for the `score` action (static, adaptive)")
	flag.BoolVar(&cliOpts.describe, "describe", false, "attach human readable descriptions to the `score` result")
	flag.BoolVar(&cliOpts.verbose, "verbose", false, "list individual words in the `evaluate` result")

	flag.Usage = func() {
		bin := filepath.Base(os.Args[0])
		fmt.Fprintf(os.Stderr, "COMPEL-O-METER - rhetorical compellingness scoring service\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "\t%s [options] server [config.json]\n", bin)
		fmt.Fprintf(os.Stderr, "\t%s [options] worker [config.json]\n", bin)
		fmt.Fprintf(os.Stderr, "\t%s [options] score [config.json] [text or - for stdin]\n", bin)
		fmt.Fprintf(os.Stderr, "\t%s [options] train [config.json] [text file or - for stdin]\n", bin)
		fmt.Fprintf(os.Stderr, "\t%s [options] evaluate [config.json]\n", bin)
		fmt.Fprintf(os.Stderr, "\t%s [options] export [config.json] [output CSV, stdout if omitted]\n", bin)
		fmt.Fprintf(os.Stderr, "\t%s [options] import [config.json] [input CSV]\n", bin)
		fmt.Fprintf(os.Stderr, "\t%s [options] test [config.json]\n", bin)
		fmt.Fprintf(os.Stderr, "\t%s [options] version\n", bin)
		flag.PrintDefaults()
	}
	flag.Parse()
	action := flag.Arg(0)
	if action == "version" {
		fmt.Printf(
			"compelometer %s\nbuild date: %s\nlast commit: %s\n",
			version.Version, version.BuildDate, version.GitCommit,
		)
		return
	}
	conf := cnf.LoadConfig(flag.Arg(1))
	setupLogging(conf, action)

	if action == "test" {
		cnf.ValidateAndDefaults(conf)
		log.Info().Msg("config OK")
		return
	}
	cnf.ValidateAndDefaults(conf)

	switch action {
	case "server":
		log.Info().Msg("Starting Compel-O-Meter")
		runApiServer(conf, version)
	case "worker":
		log.Info().Msg("Starting Compel-O-Meter worker")
		runWorker(conf)
	case "score", "train", "evaluate", "export", "import":
		if err := runCLIAction(conf, action, flag.Arg(2), cliOpts); err != nil {
			log.Fatal().Err(err).Str("action", action).Msg("action failed")
		}
	default:
		log.Fatal().Msgf("Unknown action %s", action)
	}
}
