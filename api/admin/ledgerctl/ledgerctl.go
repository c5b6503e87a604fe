// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package ledgerctl exposes the owner operations of the ledger on the
// admin listener. The listener binds localhost; handlers act as the
// configured admin identity and the ledger still checks it against the
// owner slot.
package ledgerctl

import (
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vestachain/vesta/api/restutil"
	"github.com/vestachain/vesta/ledger"
	"github.com/vestachain/vesta/log"
	"github.com/vestachain/vesta/vesta"
)

var logger = log.WithContext("pkg", "ledgerctl")

// Status is the control view of the ledger.
type Status struct {
	Paused bool          `json:"paused"`
	Owner  vesta.Address `json:"owner"`
}

// RecoverRequest asks to move an amount of a foreign token to the owner.
type RecoverRequest struct {
	Token  *vesta.Address        `json:"token"`
	Amount *math.HexOrDecimal256 `json:"amount,string"`
}

type LedgerCtl struct {
	led   *ledger.Ledger
	admin vesta.Address
}

func New(led *ledger.Ledger, admin vesta.Address) *LedgerCtl {
	return &LedgerCtl{
		led:   led,
		admin: admin,
	}
}

func (lc *LedgerCtl) handleGetStatus(w http.ResponseWriter, _ *http.Request) error {
	paused, err := lc.led.Paused()
	if err != nil {
		return err
	}
	owner, err := lc.led.Owner()
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, Status{
		Paused: paused,
		Owner:  owner,
	})
}

func (lc *LedgerCtl) handlePause(w http.ResponseWriter, _ *http.Request) error {
	if err := lc.led.Pause(lc.admin); err != nil {
		return restutil.LedgerError(err)
	}
	logger.Warn("ledger paused", "by", lc.admin)
	return lc.handleGetStatus(w, nil)
}

func (lc *LedgerCtl) handleUnpause(w http.ResponseWriter, _ *http.Request) error {
	if err := lc.led.Unpause(lc.admin); err != nil {
		return restutil.LedgerError(err)
	}
	logger.Warn("ledger unpaused", "by", lc.admin)
	return lc.handleGetStatus(w, nil)
}

func (lc *LedgerCtl) handleRecover(w http.ResponseWriter, req *http.Request) error {
	var body RecoverRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.Token == nil {
		return restutil.BadRequest(errors.New("token: missing"))
	}
	if body.Amount == nil {
		return restutil.BadRequest(errors.New("amount: missing"))
	}

	amount := (*big.Int)(body.Amount)
	if err := lc.led.EmergencyRecover(lc.admin, *body.Token, amount); err != nil {
		return restutil.LedgerError(err)
	}
	logger.Warn("recovered foreign tokens", "token", body.Token, "amount", amount)
	return restutil.WriteJSON(w, &body)
}

func (lc *LedgerCtl) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/ledger").
		Methods(http.MethodGet).
		Name("get-ledger-status").
		HandlerFunc(restutil.WrapHandlerFunc(lc.handleGetStatus))
	sub.Path("/pause").
		Methods(http.MethodPost).
		Name("post-pause").
		HandlerFunc(restutil.WrapHandlerFunc(lc.handlePause))
	sub.Path("/unpause").
		Methods(http.MethodPost).
		Name("post-unpause").
		HandlerFunc(restutil.WrapHandlerFunc(lc.handleUnpause))
	sub.Path("/recover").
		Methods(http.MethodPost).
		Name("post-recover").
		HandlerFunc(restutil.WrapHandlerFunc(lc.handleRecover))
}
