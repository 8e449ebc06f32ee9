// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"errors"
	"log/slog"
	"math/big"
	"testing"
	"time"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
)

type hexStringer [2]byte

func (h hexStringer) String() string { return "0xbeef" }

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name  string
		value slog.Value
		want  string
	}{
		{"string", slog.StringValue("plain"), "plain"},
		{"small int", slog.Int64Value(-42), "-42"},
		{"large int", slog.Int64Value(1234567), "1,234,567"},
		{"large uint", slog.Uint64Value(100000), "100,000"},
		{"bool", slog.BoolValue(true), "true"},
		{"float", slog.Float64Value(1.5), "1.500"},
		{"duration", slog.DurationValue(1500 * time.Millisecond), "1.5s"},
		{"big", slog.AnyValue(big.NewInt(-7)), "-7"},
		{"nil big", slog.AnyValue((*big.Int)(nil)), "<nil>"},
		{"uint256", slog.AnyValue(uint256.NewInt(1 << 20)), "1048576"},
		{"stringer", slog.AnyValue(hexStringer{}), "0xbeef"},
		{"error", slog.AnyValue(errors.New("boom")), "boom"},
		{"slice", slog.AnyValue([]int{1, 2}), "[1 2]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatValue(tt.value))
		})
	}
}

func TestEscapeMessage(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"trace harvested", "trace harvested"},
		{"two\nlines\tand tab", "two\nlines\tand tab"},
		{"a=b", `"a=b"`},
		{"bell\a", `"bell\a"`},
		{"naïve", `"naïve"`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, escapeMessage(tt.in), tt.in)
	}
}

func TestAppendEscapeString(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"0xabc", "0xabc"},
		{"with space", `"with space"`},
		{"k=v", `"k=v"`},
		{`quote"d`, `"quote\"d"`},
		{"line\nbreak", `"line\nbreak"`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, string(appendEscapeString(nil, tt.in)), tt.in)
	}
}

var sink string

func BenchmarkFormatValueInt(b *testing.B) {
	v := slog.Int64Value(-987654321)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		sink = formatValue(v)
	}
}
