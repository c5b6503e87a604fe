// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"net/http/pprof"
	"strings"
	"sync/atomic"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/vestachain/vesta/api/accounts"
	"github.com/vestachain/vesta/api/auth"
	"github.com/vestachain/vesta/api/events"
	"github.com/vestachain/vesta/api/stakers"
	"github.com/vestachain/vesta/api/stats"
	"github.com/vestachain/vesta/api/subscriptions"
	"github.com/vestachain/vesta/co"
	"github.com/vestachain/vesta/eventdb"
	"github.com/vestachain/vesta/health"
	"github.com/vestachain/vesta/ledger"
	"github.com/vestachain/vesta/log"
	"github.com/vestachain/vesta/state"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins string
	PprofOn        bool
	EnableMetrics  bool
	EventsLimit    uint64
}

// New assembles the REST handler over the ledger and the event index.
// tick must be the signal the event recorder broadcasts on;
// logAPIRequests is shared with the admin apilogs endpoint. The
// returned closer breaks the open subscription connections.
func New(
	led *ledger.Ledger,
	stater *state.Stater,
	token ledger.TokenMaker,
	eventDB *eventdb.EventDB,
	tick *co.Signal,
	healthStatus *health.Health,
	logAPIRequests *atomic.Bool,
	opts Options,
) (http.HandlerFunc, func()) {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	stakers.New(led, auth.NewVerifier()).
		Mount(router, "/stakers")
	stats.New(led).
		Mount(router, "/ledger/stats")
	accounts.New(stater, token).
		Mount(router, "/accounts")
	events.New(eventDB, opts.EventsLimit).
		Mount(router, "/events")
	subs := subscriptions.New(eventDB, tick, origins)
	subs.Mount(router, "/subscriptions")
	health.NewAPI(healthStatus).
		Mount(router, "/health")

	if opts.PprofOn {
		router.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		router.HandleFunc("/debug/pprof/profile", pprof.Profile)
		router.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		router.HandleFunc("/debug/pprof/trace", pprof.Trace)
		router.PathPrefix("/debug/pprof/").HandlerFunc(pprof.Index)
	}

	if opts.EnableMetrics {
		router.Use(metricsHandler)
	}

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type", auth.SignatureHeader, auth.NonceHeader}),
	)(handler)

	handler = RequestLoggerHandler(handler, logger, logAPIRequests)

	return handler.ServeHTTP, subs.Close // subscriptions handles hijacked conns, which need to be closed
}
