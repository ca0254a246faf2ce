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
	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
)

type VersionInfo struct {
	Version   string `json:"version"`
	BuildDate string `json:"buildDate"`
	GitCommit string `json:"gitCommit"`
}

type serverInfo struct {
	Name             string      `json:"name"`
	Version          VersionInfo `json:"version"`
	AdaptiveLexicon  bool        `json:"adaptiveLexicon"`
	DistributedQueue bool        `json:"distributedQueue"`
}

// ServerInfo creates a handler providing basic information
// about the running service.
func (a *Actions) ServerInfo(version VersionInfo) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		uniresp.WriteJSONResponse(ctx.Writer, serverInfo{
			Name:             "Compel-O-Meter",
			Version:          version,
			AdaptiveLexicon:  a.store != nil,
			DistributedQueue: a.radapter != nil,
		})
	}
}
