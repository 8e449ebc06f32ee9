// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// tracedump inspects, compares and converts encoded access traces.
package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"
)

var (
	version       string
	gitCommit     string
	gitTag        string
	copyrightYear string
)

func newApp() *cli.App {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}

	app := cli.NewApp()
	app.Version = fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
	app.Name = "tracedump"
	app.Usage = "inspect, compare and convert access traces"
	app.Copyright = fmt.Sprintf("2025-%s VeChain Foundation <https://vechain.org/>", copyrightYear)
	app.Flags = []cli.Flag{
		verbosityFlag,
		jsonLogsFlag,
	}
	app.Before = func(ctx *cli.Context) error {
		lvl, err := readIntFromUInt64Flag(ctx.Uint64(verbosityFlag.Name))
		if err != nil {
			return errors.Wrap(err, "parse verbosity flag")
		}
		initLogger(lvl, ctx.Bool(jsonLogsFlag.Name))
		return nil
	}
	app.Commands = []cli.Command{
		{
			Name:      "show",
			Usage:     "print a trace",
			ArgsUsage: "<file>",
			Flags:     []cli.Flag{formatFlag},
			Action:    showAction,
		},
		{
			Name:      "stat",
			Usage:     "print element counts of a trace",
			ArgsUsage: "<file>",
			Action:    statAction,
		},
		{
			Name:      "diff",
			Usage:     "compare two traces, exits with status 1 if they differ",
			ArgsUsage: "<a> <b>",
			Flags:     []cli.Flag{contextFlag},
			Action:    diffAction,
		},
		{
			Name:      "convert",
			Usage:     "re-encode a trace, formats are chosen by extension (.json, .rlp, .rlp.sz)",
			ArgsUsage: "<in> <out>",
			Action:    convertAction,
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
