// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vestachain/vesta/api/restutil"
)

type API struct {
	health *Health
}

func NewAPI(health *Health) *API {
	return &API{
		health: health,
	}
}

func (a *API) handleGetHealth(w http.ResponseWriter, _ *http.Request) error {
	status, err := a.health.Status()
	if err != nil {
		return err
	}

	if !status.Healthy {
		w.WriteHeader(http.StatusServiceUnavailable) // Set the status to 503
	} else {
		w.WriteHeader(http.StatusOK) // Set the status to 200
	}
	return restutil.WriteJSON(w, status)
}

func (a *API) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("health").
		HandlerFunc(restutil.WrapHandlerFunc(a.handleGetHealth))
}
