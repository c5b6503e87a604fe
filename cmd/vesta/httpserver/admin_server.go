// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package httpserver

import (
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/vestachain/vesta/api/admin"
	"github.com/vestachain/vesta/co"
	"github.com/vestachain/vesta/health"
	"github.com/vestachain/vesta/ledger"
	"github.com/vestachain/vesta/vesta"
)

// StartAdminServer serves the admin API on addr. The listener is meant to
// stay on localhost; requests act on the ledger as adminIdentity.
func StartAdminServer(
	addr string,
	logLevel *slog.LevelVar,
	healthStatus *health.Health,
	led *ledger.Ledger,
	adminIdentity vesta.Address,
	apiLogs *atomic.Bool,
) (string, func(), error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, errors.Wrapf(err, "listen admin API addr [%v]", addr)
	}

	adminHandler := admin.New(logLevel, healthStatus, led, adminIdentity, apiLogs)

	srv := &http.Server{Handler: adminHandler, ReadHeaderTimeout: time.Second, ReadTimeout: 5 * time.Second}
	var goes co.Goes
	goes.Go(func() {
		srv.Serve(listener)
	})
	return "http://" + listener.Addr().String() + "/admin", func() {
		srv.Close()
		goes.Wait()
	}, nil
}
