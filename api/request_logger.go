// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"bytes"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/vestachain/vesta/log"
)

// LogStatus is the request logger toggle state, shared with the admin
// endpoint that flips it.
type LogStatus struct {
	Enabled bool `json:"enabled"`
}

// RequestLoggerHandler logs every request including its body before
// handing it on. The enabled flag may be flipped at runtime through
// the admin apilogs endpoint.
func RequestLoggerHandler(handler http.Handler, logger log.Logger, enabled *atomic.Bool) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		if !enabled.Load() {
			handler.ServeHTTP(w, r)
			return
		}

		var body []byte
		if r.Body != nil {
			var err error
			// the body reads once only, hand the next handler a replacement
			body, err = io.ReadAll(r.Body)
			if err != nil {
				logger.Warn("unexpected body read error", "err", err)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))
		}

		logger.Info("API Request",
			"timestamp", time.Now().Unix(),
			"URI", r.URL.String(),
			"Method", r.Method,
			"Body", string(body),
		)

		handler.ServeHTTP(w, r)
	}
	return http.HandlerFunc(fn)
}
