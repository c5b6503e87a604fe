// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vestachain/vesta/log"
)

// mockLogger records the key/value context of Info and Warn calls.
type mockLogger struct {
	loggedData []any
}

func (m *mockLogger) With(_ ...any) log.Logger { return m }

func (m *mockLogger) New(_ ...any) log.Logger { return m }

func (m *mockLogger) Log(_ slog.Level, _ string, _ ...any) {}

func (m *mockLogger) Trace(_ string, _ ...any) {}

func (m *mockLogger) Debug(_ string, _ ...any) {}

func (m *mockLogger) Info(_ string, ctx ...any) {
	m.loggedData = append(m.loggedData, ctx...)
}

func (m *mockLogger) Warn(_ string, ctx ...any) {
	m.loggedData = append(m.loggedData, ctx...)
}

func (m *mockLogger) Error(_ string, _ ...any) {}

func (m *mockLogger) Crit(_ string, _ ...any) {}

func (m *mockLogger) Write(_ slog.Level, _ string, _ ...any) {}

func (m *mockLogger) Enabled(_ context.Context, _ slog.Level) bool { return true }

func (m *mockLogger) Handler() slog.Handler { return nil }

func TestRequestLoggerHandler(t *testing.T) {
	mockLog := &mockLogger{}
	enabled := atomic.Bool{}
	enabled.Store(true)

	testHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	loggerHandler := RequestLoggerHandler(testHandler, mockLog, &enabled)

	reqBody := "test body"
	req := httptest.NewRequest("POST", "http://example.com/foo", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	loggerHandler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK", rr.Body.String())

	loggedData := mockLog.loggedData
	assert.Contains(t, loggedData, "URI")
	assert.Contains(t, loggedData, "http://example.com/foo")
	assert.Contains(t, loggedData, "Method")
	assert.Contains(t, loggedData, "POST")
	assert.Contains(t, loggedData, "Body")
	assert.Contains(t, loggedData, reqBody)

	foundTimestamp := false
	for i := 0; i < len(loggedData); i += 2 {
		if loggedData[i] == "timestamp" {
			_, ok := loggedData[i+1].(int64)
			assert.True(t, ok, "timestamp should be an int64")
			foundTimestamp = true
			break
		}
	}
	assert.True(t, foundTimestamp, "timestamp should be logged")
}

func TestRequestLoggerHandlerDisabled(t *testing.T) {
	mockLog := &mockLogger{}
	var enabled atomic.Bool

	testHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	loggerHandler := RequestLoggerHandler(testHandler, mockLog, &enabled)

	req := httptest.NewRequest("POST", "http://example.com/foo", strings.NewReader("test body"))
	rr := httptest.NewRecorder()
	loggerHandler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, mockLog.loggedData)
}
