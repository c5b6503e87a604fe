// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initAPIServer(t *testing.T) (*Health, *httptest.Server) {
	h := New(time.Minute)

	router := mux.NewRouter()
	NewAPI(h).Mount(router, "/health")

	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return h, ts
}

func httpGet(t *testing.T, url string) ([]byte, int) {
	res, err := http.Get(url) //#nosec G107
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()

	r, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}
	return r, res.StatusCode
}

func TestHealthEndpoint(t *testing.T) {
	h, ts := initAPIServer(t)

	// before bootstrap completes the endpoint reports unavailable
	var status Status
	respBody, statusCode := httpGet(t, ts.URL+"/health")
	require.NoError(t, json.Unmarshal(respBody, &status))
	assert.Equal(t, http.StatusServiceUnavailable, statusCode)
	assert.False(t, status.Healthy)
	assert.False(t, status.Bootstrapped)

	h.BootstrapStatus(true)
	h.MarkLedgerProbe(false)

	respBody, statusCode = httpGet(t, ts.URL+"/health")
	require.NoError(t, json.Unmarshal(respBody, &status))
	assert.Equal(t, http.StatusOK, statusCode)
	assert.True(t, status.Healthy)
	assert.True(t, status.Bootstrapped)
	require.NotNil(t, status.LedgerProbe)
	require.NotNil(t, status.LedgerProbe.Paused)
	assert.False(t, *status.LedgerProbe.Paused)
}
