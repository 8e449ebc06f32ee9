// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tracedb

import "github.com/vechain/exectrace/metrics"

var (
	metricCodeCache  = metrics.LazyLoadCounterVec("tracedb_code_cache", []string{"event"})
	metricReadErrors = metrics.LazyLoadCounterVec("tracedb_read_errors", []string{"kind"})
)
