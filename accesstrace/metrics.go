// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accesstrace

import "github.com/vechain/exectrace/metrics"

var (
	metricHarvestCount = metrics.LazyLoadCounter("accesstrace_harvest_count")
	metricHarvestSize  = metrics.LazyLoadHistogramVec("accesstrace_harvest_size", []string{"kind"}, metrics.BucketSetSize)
)
