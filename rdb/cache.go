// Copyright 2023 Martin Zimandl <martin.zimandl@gmail.com>
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
	"bytes"
	"compelometer/results"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/czcorpus/cnc-gokit/fs"
	"github.com/rs/zerolog/log"
)

func (a *Adapter) cacheFilePath(query Query) string {
	hashKey := sha1.Sum(append([]byte(query.Func), query.Args...))
	return filepath.Join(a.cachePath, query.Func+hex.EncodeToString(hashKey[:]))
}

func loadCachedResult(path string) (*WorkerResult, bool) {
	if !fs.PathExists(path) {
		return nil, false
	}
	if isf, _ := fs.IsFile(path); !isf {
		return nil, false
	}
	content, err := os.ReadFile(path)
	if err != nil {
		log.Err(err).Msgf("Error while reading cache file %s", path)
		return nil, false
	}
	rType, value, found := bytes.Cut(content, []byte("\n"))
	if !found {
		log.Warn().Str("path", path).Msg("invalid cache file, ignoring")
		return nil, false
	}
	return &WorkerResult{
		ResultType: results.ResultType(rType),
		Value:      value,
	}, true
}

func storeCachedResult(path string, result *WorkerResult) {
	var buff bytes.Buffer
	buff.WriteString(result.ResultType.String() + "\n")
	buff.Write(result.Value)
	if err := os.WriteFile(path, buff.Bytes(), 0644); err != nil {
		log.Err(err).Msgf("Error while writing cache file %s", path)
	}
}

// PublishQueryCached works like PublishQuery but it stores
// successful results to the configured cache directory and serves
// repeated queries from there. Only queries with deterministic
// results (e.g. static scoring) should be sent this way.
func (a *Adapter) PublishQueryCached(ctx context.Context, query Query) (<-chan *WorkerResult, error) {
	if a.cachePath == "" {
		return a.PublishQuery(ctx, query)
	}
	path := a.cacheFilePath(query)
	if cached, ok := loadCachedResult(path); ok {
		ans := make(chan *WorkerResult, 1)
		ans <- cached
		close(ans)
		return ans, nil
	}

	wr, err := a.PublishQuery(ctx, query)
	if err != nil {
		return nil, err
	}
	ans := make(chan *WorkerResult, 1)
	go func() {
		defer close(ans)
		rawResult, ok := <-wr
		if !ok {
			return
		}
		if rawResult.ResultType != results.ResultTypeError && !rawResult.HasUserError {
			storeCachedResult(path, rawResult)
		}
		ans <- rawResult
	}()
	return ans, nil
}
