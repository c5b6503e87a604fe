// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/common/expfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vestachain/vesta/metrics"
	"github.com/vestachain/vesta/vesta"
)

func init() {
	metrics.InitializePrometheusMetrics()
}

func httpGet(t *testing.T, url string) ([]byte, int) {
	res, err := http.Get(url) //#nosec G107
	require.NoError(t, err)
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	require.NoError(t, res.Body.Close())
	return body, res.StatusCode
}

func TestMetricsHandler(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/stakers/{address}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.HandleFunc("/ledger/stats", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	router.PathPrefix("/metrics").Handler(metrics.HTTPHandler())
	ts := httptest.NewServer(metricsHandler(router))
	defer ts.Close()

	stakerPath := "stakers_" + vesta.Address{}.String()

	httpGet(t, ts.URL+"/stakers/"+vesta.Address{}.String())
	httpGet(t, ts.URL+"/stakers/"+vesta.Address{}.String())

	_, code := httpGet(t, ts.URL+"/ledger/stats")
	assert.Equal(t, http.StatusServiceUnavailable, code)

	body, _ := httpGet(t, ts.URL+"/metrics")
	parser := expfmt.TextParser{}
	families, err := parser.TextToMetricFamilies(bytes.NewReader(body))
	assert.Nil(t, err)

	m := families["vesta_metrics_api_request_count"].GetMetric()
	require.Equal(t, 2, len(m), "should be 2 metric entries")
	assert.Equal(t, float64(2), m[0].GetCounter().GetValue())
	assert.Equal(t, float64(1), m[1].GetCounter().GetValue())

	labels := m[0].GetLabel()
	require.Equal(t, 3, len(labels))
	assert.Equal(t, "code", labels[0].GetName())
	assert.Equal(t, "200", labels[0].GetValue())
	assert.Equal(t, "method", labels[1].GetName())
	assert.Equal(t, "GET", labels[1].GetValue())
	assert.Equal(t, "path", labels[2].GetName())
	assert.Equal(t, stakerPath, labels[2].GetValue())

	labels = m[1].GetLabel()
	require.Equal(t, 3, len(labels))
	assert.Equal(t, "code", labels[0].GetName())
	assert.Equal(t, "503", labels[0].GetValue())
	assert.Equal(t, "method", labels[1].GetName())
	assert.Equal(t, "GET", labels[1].GetValue())
	assert.Equal(t, "path", labels[2].GetName())
	assert.Equal(t, "ledger_stats", labels[2].GetValue())

	assert.NotNil(t, families["vesta_metrics_api_duration_ms"], "request duration histogram should be registered")
}
