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

package main

import (
	"compelometer/cnf"
	"compelometer/lexicon"
	"compelometer/rdb"
	"compelometer/scoring"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	cliRedisConnectionTimeout = 10 * time.Second
)

type cliOptions struct {
	mode     string
	describe bool
	verbose  bool
}

func readTextArg(arg string) (string, error) {
	if arg == "" || arg == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	return arg, nil
}

func readFileArg(arg string) (string, error) {
	if arg == "" || arg == "-" {
		return readTextArg(arg)
	}
	data, err := os.ReadFile(arg)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", arg, err)
	}
	return string(data), nil
}

func printJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

func runScore(ctx context.Context, comps *components, arg string, opts *cliOptions) error {
	text, err := readTextArg(arg)
	if err != nil {
		return err
	}
	ans, err := comps.engine.Score(ctx, text, scoring.Mode(opts.mode))
	if err != nil {
		return err
	}
	if opts.describe {
		descs := scoring.Describe(ans)
		ans.Descriptions = &descs
	}
	return printJSON(os.Stdout, ans.Rounded())
}

func runTrain(ctx context.Context, comps *components, arg string) error {
	text, err := readFileArg(arg)
	if err != nil {
		return err
	}
	ans, err := comps.engine.Train(ctx, text)
	if err != nil {
		return err
	}
	return printJSON(os.Stdout, ans)
}

func runEvaluate(ctx context.Context, comps *components, opts *cliOptions) error {
	if comps.store == nil {
		return scoring.ErrNoAdaptiveStore
	}
	ans, err := lexicon.Evaluate(ctx, comps.store, lexicon.NewVaderReference())
	if err != nil {
		return err
	}
	if !opts.verbose {
		ans.Words = nil
	}
	return printJSON(os.Stdout, ans)
}

func runExport(ctx context.Context, comps *components, arg string) error {
	out := os.Stdout
	if arg != "" && arg != "-" {
		f, err := os.Create(arg)
		if err != nil {
			return fmt.Errorf("failed to create export file: %w", err)
		}
		defer f.Close()
		out = f
	}
	n, err := lexicon.Export(ctx, comps.store, out)
	if err != nil {
		return err
	}
	log.Info().Int("entries", n).Msg("adaptive lexicon exported")
	return nil
}

func runImport(ctx context.Context, comps *components, arg string) error {
	if arg == "" {
		return errors.New("missing input CSV file")
	}
	f, err := os.Open(arg)
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()
	n, err := lexicon.Import(ctx, comps.store, f)
	log.Info().Int("entries", n).Msg("adaptive lexicon entries imported")
	return err
}

// runCLIAction runs a single command line action. Redis is
// connected only when the adaptive lexicon is stored there.
func runCLIAction(conf *cnf.Conf, action, arg string, opts *cliOptions) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var radapter *rdb.Adapter
	if conf.Lexicon.StoreBackend == lexicon.BackendRedis {
		radapter = rdb.NewAdapter(conf.Redis, ctx, nil)
		if err := radapter.TestConnection(cliRedisConnectionTimeout); err != nil {
			return err
		}
	}
	comps, err := newComponents(conf, radapter)
	if err != nil {
		return err
	}
	defer comps.Close()

	switch action {
	case "score":
		return runScore(ctx, comps, arg, opts)
	case "train":
		return runTrain(ctx, comps, arg)
	case "evaluate":
		return runEvaluate(ctx, comps, opts)
	case "export":
		return runExport(ctx, comps, arg)
	case "import":
		return runImport(ctx, comps, arg)
	default:
		return fmt.Errorf("unknown action %s", action)
	}
}
