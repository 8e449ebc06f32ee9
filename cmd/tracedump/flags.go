// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/exectrace/log"
)

func envVar(name string) string {
	return "TRACEDUMP_" + name
}

var (
	verbosityFlag = cli.Uint64Flag{
		Name:   "verbosity",
		Value:  log.LegacyLevelWarn,
		Usage:  "log verbosity (0-9)",
		EnvVar: envVar("VERBOSITY"),
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:   "json-log",
		Usage:  "output logs in JSON format",
		EnvVar: envVar("JSON_LOG"),
	}
	formatFlag = cli.StringFlag{
		Name:   "format",
		Value:  "json",
		Usage:  "output format (json|yaml|text|spew)",
		EnvVar: envVar("FORMAT"),
	}
	contextFlag = cli.IntFlag{
		Name:   "context",
		Value:  3,
		Usage:  "lines of context in the unified diff",
		EnvVar: envVar("CONTEXT"),
	}
)
