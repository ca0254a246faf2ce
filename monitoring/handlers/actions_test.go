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
	"compelometer/monitoring"
	"compelometer/results"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := monitoring.NewWorkerJobLogger(nil, time.UTC)
	t0 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	logger.Log(results.JobLog{WorkerID: "w1", Func: "score", Begin: t0, End: t0.Add(time.Second)})
	logger.Log(results.JobLog{
		WorkerID: "w2", Func: "train", Begin: t0, End: t0.Add(2 * time.Second), Err: "failed"})
	actions := NewActions(logger)
	engine := gin.New()
	engine.GET("/monitoring/workers-load", actions.WorkersLoad)
	engine.GET("/monitoring/workers-load/:workerId", actions.SingleWorkerLoad)
	engine.GET("/monitoring/recent-records", actions.RecentRecords)
	return engine
}

func TestWorkersLoad(t *testing.T) {
	router := setupRouter()
	for _, span := range []string{"recent", "total"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/monitoring/workers-load?span="+span, nil)
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 2.0, resp["numJobs"])
		assert.Equal(t, 1.0, resp["numErrors"])
		assert.Equal(t, 2.0, resp["numWorkers"])
	}
}

func TestWorkersLoadInvalidSpan(t *testing.T) {
	router := setupRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/monitoring/workers-load?span=week", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSingleWorkerLoad(t *testing.T) {
	router := setupRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/monitoring/workers-load/w2?span=total", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1.0, resp["numJobs"])
	assert.Equal(t, 1.0, resp["numErrors"])

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/monitoring/workers-load/w9", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecentRecords(t *testing.T) {
	router := setupRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/monitoring/recent-records", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var resp []results.JobLog
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "failed", resp[1].Err)
}
