// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"
	"gopkg.in/yaml.v3"

	"github.com/vechain/exectrace/accesstrace"
	"github.com/vechain/exectrace/log"
)

var errTracesDiffer = errors.New("traces differ")

func requireArgs(ctx *cli.Context, n int) error {
	if ctx.NArg() != n {
		return errors.Errorf("%v: expected %d argument(s), got %d (usage: %v %v)",
			ctx.Command.Name, n, ctx.NArg(), ctx.Command.Name, ctx.Command.ArgsUsage)
	}
	return nil
}

func showAction(ctx *cli.Context) error {
	if err := requireArgs(ctx, 1); err != nil {
		return err
	}
	tr, err := loadTrace(ctx.Args().Get(0))
	if err != nil {
		return err
	}
	return printTrace(ctx.App.Writer, tr, ctx.String(formatFlag.Name))
}

func printTrace(w io.Writer, tr *accesstrace.Trace, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(tr, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		// go through the JSON form so hex strings and key order stay the same
		data, err := json.Marshal(tr)
		if err != nil {
			return err
		}
		var obj map[string]any
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		out, err := yaml.Marshal(obj)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	case "text":
		return writeText(w, tr)
	case "spew":
		cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true, SortKeys: true}
		cfg.Fdump(w, tr.ToJSON())
		return nil
	}
	return errors.Errorf("unknown format %q", format)
}

// writeText prints one element per line, slots indented under their account.
func writeText(w io.Writer, tr *accesstrace.Trace) error {
	for _, addr := range tr.Accounts() {
		if _, err := fmt.Fprintf(w, "account %v\n", addr); err != nil {
			return err
		}
		for _, key := range tr.Storage(addr) {
			if _, err := fmt.Fprintf(w, "  slot %v\n", key); err != nil {
				return err
			}
		}
	}
	for _, hash := range tr.Codes() {
		if _, err := fmt.Fprintf(w, "code %v\n", hash); err != nil {
			return err
		}
	}
	for _, num := range tr.BlockNumbers() {
		if _, err := fmt.Fprintf(w, "blockhash %d\n", num); err != nil {
			return err
		}
	}
	return nil
}

func statAction(ctx *cli.Context) error {
	if err := requireArgs(ctx, 1); err != nil {
		return err
	}
	tr, err := loadTrace(ctx.Args().Get(0))
	if err != nil {
		return err
	}
	s := tr.Stats()
	_, err = fmt.Fprintf(ctx.App.Writer, "accounts:     %d\nslots:        %d\ncodes:        %d\nblock hashes: %d\n",
		s.Accounts, s.Slots, s.Codes, s.BlockHashes)
	return err
}

func diffAction(ctx *cli.Context) error {
	if err := requireArgs(ctx, 2); err != nil {
		return err
	}
	var (
		pathA, pathB = ctx.Args().Get(0), ctx.Args().Get(1)
		a, b         *accesstrace.Trace
		g            errgroup.Group
	)
	g.Go(func() (err error) {
		a, err = loadTrace(pathA)
		return
	})
	g.Go(func() (err error) {
		b, err = loadTrace(pathB)
		return
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if a.Equal(b) {
		log.Info("traces are identical", "a", pathA, "b", pathB)
		return nil
	}

	w := ctx.App.Writer
	diff, err := jsonDiff(a, b, pathA, pathB, ctx.Int(contextFlag.Name))
	if err != nil {
		return err
	}
	fmt.Fprint(w, diff)

	for _, side := range []struct {
		path string
		only *accesstrace.Trace
	}{
		{pathA, a.Diff(b)},
		{pathB, b.Diff(a)},
	} {
		if side.only.IsEmpty() {
			continue
		}
		fmt.Fprintf(w, "\nonly in %v:\n", side.path)
		if err := writeText(w, side.only); err != nil {
			return err
		}
	}
	return errTracesDiffer
}

func convertAction(ctx *cli.Context) error {
	if err := requireArgs(ctx, 2); err != nil {
		return err
	}
	tr, err := loadTrace(ctx.Args().Get(0))
	if err != nil {
		return err
	}
	return saveTrace(ctx.Args().Get(1), tr)
}
