// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/vestachain/vesta/api/admin/apilogs"
	"github.com/vestachain/vesta/api/admin/ledgerctl"
	"github.com/vestachain/vesta/api/admin/loglevel"
	"github.com/vestachain/vesta/health"
	"github.com/vestachain/vesta/ledger"
	"github.com/vestachain/vesta/vesta"
)

// New assembles the admin surface: log level control, API request log
// toggling, health reporting and owner operations on the ledger.
func New(
	logLevel *slog.LevelVar,
	healthStatus *health.Health,
	led *ledger.Ledger,
	adminIdentity vesta.Address,
	logAPIRequests *atomic.Bool,
) http.HandlerFunc {
	router := mux.NewRouter()
	sub := router.PathPrefix("/admin").Subrouter()

	loglevel.New(logLevel).Mount(sub, "/loglevel")
	apilogs.New(logAPIRequests).Mount(sub, "/apilogs")
	health.NewAPI(healthStatus).Mount(sub, "/health")
	ledgerctl.New(led, adminIdentity).Mount(sub, "")

	handler := handlers.CompressHandler(router)

	return handler.ServeHTTP
}
