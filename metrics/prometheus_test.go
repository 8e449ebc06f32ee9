// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// #nosec G404
package metrics

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	dto "github.com/prometheus/client_model/go"
)

func gather(t *testing.T) map[string]*dto.MetricFamily {
	metricFamilies, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	families := make(map[string]*dto.MetricFamily)
	for _, mf := range metricFamilies {
		families[mf.GetName()] = mf
	}
	return families
}

func TestPromMetrics(t *testing.T) {
	InitializePrometheusMetrics()

	// 2 ways of accessing it - useful to avoid lookups
	count1 := Counter("count1")
	Counter("count2")
	countVect := CounterVec("countVec1", []string{"zeroOrOne"})
	HistogramVec("hist1", []string{"zeroOrOne"}, BucketSetSize)

	count1.Add(1)
	randCount2 := rand.Intn(100) + 1
	for i := 0; i < randCount2; i++ {
		Counter("count2").Add(1)
	}

	histTotal := 0
	for i, n := 0, rand.Intn(100)+2; i < n; i++ {
		HistogramVec("hist1", []string{"zeroOrOne"}, BucketSetSize).
			ObserveWithLabels(int64(i), map[string]string{"zeroOrOne": strconv.Itoa(i % 2)})
		histTotal += i
	}

	totalCountVec := 0
	for i, n := 0, rand.Intn(100)+2; i < n; i++ {
		countVect.AddWithLabel(int64(i), map[string]string{"zeroOrOne": strconv.Itoa(i % 2)})
		totalCountVec += i
	}

	families := gather(t)

	require.Equal(t, float64(1), families["exectrace_count1"].Metric[0].GetCounter().GetValue())
	require.Equal(t, float64(randCount2), families["exectrace_count2"].Metric[0].GetCounter().GetValue())

	sumHistVec := families["exectrace_hist1"].Metric[0].GetHistogram().GetSampleSum() +
		families["exectrace_hist1"].Metric[1].GetHistogram().GetSampleSum()
	require.Equal(t, float64(histTotal), sumHistVec)

	sumCountVec := families["exectrace_countVec1"].Metric[0].GetCounter().GetValue() +
		families["exectrace_countVec1"].Metric[1].GetCounter().GetValue()
	require.Equal(t, float64(totalCountVec), sumCountVec)
}

func TestReRegister(t *testing.T) {
	InitializePrometheusMetrics()

	// a fresh service instance must reuse collectors already known to the registry
	svc := newPrometheusMetrics()
	svc.GetOrCreateCountMeter("reregistered").Add(2)
	newPrometheusMetrics().GetOrCreateCountMeter("reregistered").Add(3)

	require.Equal(t, float64(5), gather(t)["exectrace_reregistered"].Metric[0].GetCounter().GetValue())
}

func TestLazyLoading(t *testing.T) {
	metrics = defaultNoopMetrics() // make sure it starts in the default state of noopMeter

	for _, a := range []any{
		Counter("noopCounter"),
		CounterVec("noopCounter", nil),
		HistogramVec("noopHist", nil, nil),
	} {
		require.IsType(t, &noopMeters{}, a)
	}

	lazyCounter := LazyLoadCounter("lazyCounter")
	lazyCounterVec := LazyLoadCounterVec("lazyCounterVec", nil)
	lazyHistogramVec := LazyLoadHistogramVec("lazyHistogramVec", nil, nil)

	// after initialization, newly created metrics become of the prometheus type
	InitializePrometheusMetrics()

	require.IsType(t, &promCountMeter{}, lazyCounter())
	require.IsType(t, &promCountVecMeter{}, lazyCounterVec())
	require.IsType(t, &promHistogramVecMeter{}, lazyHistogramVec())
}
