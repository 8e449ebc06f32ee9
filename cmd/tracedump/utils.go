// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/golang/snappy"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/vechain/exectrace/accesstrace"
	"github.com/vechain/exectrace/log"
)

func readIntFromUInt64Flag(val uint64) (int, error) {
	if val > math.MaxInt {
		return 0, errors.Errorf("flag value %d exceeds max int", val)
	}
	return int(val), nil
}

func initLogger(lvl int, jsonLogs bool) {
	var level slog.LevelVar
	level.Set(log.FromLegacyLevel(lvl))

	terminal := (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) && os.Getenv("TERM") != "dumb"
	log.SetDefault(log.NewLogger(newLogHandler(os.Stderr, &level, jsonLogs, terminal)))
}

// newLogHandler picks JSON when asked, coloured terminal output for a tty and
// logfmt when stderr is redirected.
func newLogHandler(w io.Writer, level *slog.LevelVar, jsonLogs, terminal bool) slog.Handler {
	switch {
	case jsonLogs:
		return log.JSONHandlerWithLevel(w, level)
	case terminal:
		return log.NewTerminalHandlerWithLevel(w, level, true)
	default:
		return log.LogfmtHandlerWithLevel(w, level)
	}
}

type fileFormat int

const (
	formatJSON fileFormat = iota
	formatRLP
	formatRLPSnappy
)

func (f fileFormat) String() string {
	switch f {
	case formatJSON:
		return "json"
	case formatRLP:
		return "rlp"
	case formatRLPSnappy:
		return "rlp.sz"
	}
	return "unknown"
}

// formatOf picks the encoding of a trace file by its extension.
func formatOf(path string) (fileFormat, error) {
	switch {
	case strings.HasSuffix(path, ".rlp.sz"):
		return formatRLPSnappy, nil
	case strings.HasSuffix(path, ".rlp"):
		return formatRLP, nil
	case strings.HasSuffix(path, ".json"):
		return formatJSON, nil
	}
	return 0, errors.Errorf("unsupported file extension: %v (want .json, .rlp or .rlp.sz)", path)
}

func decodeTrace(data []byte, format fileFormat) (*accesstrace.Trace, error) {
	var tr accesstrace.Trace
	switch format {
	case formatJSON:
		if err := json.Unmarshal(data, &tr); err != nil {
			return nil, err
		}
	case formatRLPSnappy:
		raw, err := snappy.Decode(nil, data)
		if err != nil {
			return nil, errors.Wrap(err, "snappy")
		}
		data = raw
		fallthrough
	case formatRLP:
		if err := rlp.DecodeBytes(data, &tr); err != nil {
			return nil, err
		}
	}
	return &tr, nil
}

func encodeTrace(tr *accesstrace.Trace, format fileFormat) ([]byte, error) {
	switch format {
	case formatJSON:
		data, err := json.MarshalIndent(tr, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case formatRLP:
		return rlp.EncodeToBytes(tr)
	case formatRLPSnappy:
		data, err := rlp.EncodeToBytes(tr)
		if err != nil {
			return nil, err
		}
		return snappy.Encode(nil, data), nil
	}
	return nil, errors.Errorf("unsupported format %v", format)
}

func loadTrace(path string) (*accesstrace.Trace, error) {
	format, err := formatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	tr, err := decodeTrace(data, format)
	if err != nil {
		return nil, errors.WithMessagef(err, "decode %v", path)
	}
	s := tr.Stats()
	log.Debug("trace loaded", "path", path, "format", format, "accounts", s.Accounts, "slots", s.Slots)
	return tr, nil
}

func saveTrace(path string, tr *accesstrace.Trace) error {
	format, err := formatOf(path)
	if err != nil {
		return err
	}
	data, err := encodeTrace(tr, format)
	if err != nil {
		return errors.WithMessagef(err, "encode %v", path)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	log.Debug("trace saved", "path", path, "format", format, "size", len(data))
	return nil
}

// jsonDiff returns a unified diff of the indented JSON forms of a and b.
// It is empty when both render the same.
func jsonDiff(a, b *accesstrace.Trace, fromFile, toFile string, context int) (string, error) {
	ea, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return "", err
	}
	eb, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return "", err
	}
	if bytes.Equal(ea, eb) {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(ea)),
		B:        difflib.SplitLines(string(eb)),
		FromFile: fromFile,
		ToFile:   toFile,
		Context:  context,
	})
}
