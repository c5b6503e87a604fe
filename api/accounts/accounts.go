// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package accounts exposes token balances.
package accounts

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vestachain/vesta/api/restutil"
	"github.com/vestachain/vesta/ledger"
	"github.com/vestachain/vesta/state"
	"github.com/vestachain/vesta/vesta"
)

type Accounts struct {
	stater *state.Stater
	token  ledger.TokenMaker
}

func New(stater *state.Stater, token ledger.TokenMaker) *Accounts {
	return &Accounts{
		stater,
		token,
	}
}

func (a *Accounts) handleGetBalance(w http.ResponseWriter, req *http.Request) error {
	addr, err := vesta.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "address"))
	}
	bal, err := a.token(a.stater.NewState()).BalanceOf(addr)
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, &Account{
		Balance: math.HexOrDecimal256(*bal),
	})
}

func (a *Accounts) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{address}/balance").
		Methods(http.MethodGet).
		Name("GET /accounts/{address}/balance").
		HandlerFunc(restutil.WrapHandlerFunc(a.handleGetBalance))
}
