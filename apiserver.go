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
	"compelometer/cnf"
	"compelometer/handlers"
	"compelometer/metrics"
	"compelometer/monitoring"
	monitoringActions "compelometer/monitoring/handlers"
	"compelometer/openapi"
	"compelometer/rdb"
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type apiServer struct {
	server    *http.Server
	conf      *cnf.Conf
	radapter  *rdb.Adapter
	comps     *components
	jobLogger *monitoring.WorkerJobLogger
	version   handlers.VersionInfo
}

func (api *apiServer) Start(ctx context.Context) {
	if !api.conf.IsDebugMode() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(additionalLogEvents())
	engine.Use(logging.GinMiddleware())
	engine.Use(uniresp.AlwaysJSONContentType())
	engine.Use(CORSMiddleware(api.conf))
	engine.NoMethod(uniresp.NoMethodHandler)
	engine.NoRoute(uniresp.NotFoundHandler)

	protected := engine.Group("/").Use(AuthRequired(api.conf))

	// without Redis, the API server scores texts itself
	actions := handlers.NewActions(
		api.comps.engine, api.radapter, api.comps.static, api.comps.store, api.jobLogger)

	engine.GET("/", actions.ServerInfo(api.version))

	engine.GET(
		"/openapi", openapi.MkHandleRequest(api.conf.PublicURL, api.version.Version))

	// Swagger UI rendering the document served by /openapi
	engine.GET(
		"/docs/*any",
		ginSwagger.WrapHandler(
			swaggerFiles.Handler,
			ginSwagger.URL(strings.TrimSuffix(api.conf.PublicURL, "/")+"/openapi"),
		),
	)

	engine.POST(
		"/score", actions.Score)

	engine.GET(
		"/lexicon/:word", actions.WordInfo)

	protected.GET(
		"/lexicon", actions.AdaptiveEntries)

	protected.POST(
		"/train", actions.Train)

	monActions := monitoringActions.NewActions(api.jobLogger)

	engine.GET(
		"/monitoring/workers-load", monActions.WorkersLoad)

	engine.GET(
		"/monitoring/workers-load/:workerId", monActions.SingleWorkerLoad)

	engine.GET(
		"/monitoring/recent-records", monActions.RecentRecords)

	engine.GET(
		"/metrics", metrics.Handler())

	log.Info().Msgf("starting to listen at %s:%d", api.conf.ListenAddress, api.conf.ListenPort)
	api.server = &http.Server{
		Handler:      engine,
		Addr:         fmt.Sprintf("%s:%d", api.conf.ListenAddress, api.conf.ListenPort),
		WriteTimeout: time.Duration(api.conf.ServerWriteTimeoutSecs) * time.Second,
		ReadTimeout:  time.Duration(api.conf.ServerReadTimeoutSecs) * time.Second,
	}
	go func() {
		if err := api.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()
}

func (api *apiServer) Stop(ctx context.Context) error {
	log.Warn().Msg("shutting down Compel-O-Meter HTTP API server")
	return api.server.Shutdown(ctx)
}

// runServices starts all the services and waits for a shutdown
// signal. Then it stops the services within a time limit.
func runServices(ctx context.Context, services []service) {
	for _, m := range services {
		m.Start(ctx)
	}
	<-ctx.Done()
	log.Warn().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var wg sync.WaitGroup
	for _, s := range services {
		wg.Add(1)
		go func(srv service) {
			defer wg.Done()
			if err := srv.Stop(shutdownCtx); err != nil {
				log.Error().Err(err).Type("service", srv).Msg("Error shutting down service")
			}
		}(s)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info().Msg("Graceful shutdown completed")
	case <-shutdownCtx.Done():
		log.Warn().Msg("Shutdown timed out")
	}
}

func runApiServer(
	conf *cnf.Conf,
	version handlers.VersionInfo,
) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	statusWriter, err := monitoring.NewStatusWriter(ctx, conf.Monitoring, conf.TimezoneLocation())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize monitoring")
		return
	}
	jobLogger := monitoring.NewWorkerJobLogger(statusWriter, conf.TimezoneLocation())

	var radapter *rdb.Adapter
	if conf.UsesRedis() {
		radapter = rdb.NewAdapter(conf.Redis, ctx, jobLogger)
		if err := radapter.TestConnection(redisConnectionTestTimeout); err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
			return
		}
	}
	comps, err := newComponents(conf, radapter)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize scoring")
		return
	}
	defer comps.Close()

	server := &apiServer{
		conf:      conf,
		radapter:  radapter,
		comps:     comps,
		jobLogger: jobLogger,
		version:   version,
	}
	runServices(ctx, []service{statusWriter, jobLogger, server})
}
