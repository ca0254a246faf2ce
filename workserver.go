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
	"compelometer/rdb"
	"compelometer/worker"
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/rs/zerolog/log"
)

func getWorkerID() (workerID string) {
	workerID = getEnv("WORKER_ID")
	if workerID == "" {
		workerID = strconv.Itoa(os.Getpid())
	}
	return
}

func runWorker(conf *cnf.Conf) {
	if !conf.UsesRedis() {
		log.Fatal().Msg("worker requires the `redis` configuration section")
		return
	}
	workerID := getWorkerID()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	radapter := rdb.NewAdapter(conf.Redis, ctx, nil)
	err := radapter.TestConnection(redisConnectionTestTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
		return
	}
	comps, err := newComponents(conf, radapter)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize scoring")
		return
	}
	defer comps.Close()

	ch := radapter.Subscribe()
	wrk := worker.NewWorker(workerID, radapter, ch, comps.engine, conf.WorkerJobTimeout())
	runServices(ctx, []service{wrk})
}
