// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package stakers exposes the staking operations over REST. Reads are open,
// mutations require a request signature from the account itself.
package stakers

import (
	"bytes"
	"io"
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vestachain/vesta/api/auth"
	"github.com/vestachain/vesta/api/restutil"
	"github.com/vestachain/vesta/ledger"
	"github.com/vestachain/vesta/vesta"
)

type Stakers struct {
	led      *ledger.Ledger
	verifier *auth.Verifier
}

func New(led *ledger.Ledger, verifier *auth.Verifier) *Stakers {
	return &Stakers{
		led,
		verifier,
	}
}

func (s *Stakers) handleGetStaker(w http.ResponseWriter, req *http.Request) error {
	addr, err := vesta.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "address"))
	}
	info, err := s.led.GetStakingInfo(addr)
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, convertStakingInfo(info))
}

// authenticate reads the whole body, checks the request signature against it
// and requires the signer to be the account in the path. The body is returned
// for the handler to decode.
func (s *Stakers) authenticate(req *http.Request) (vesta.Address, []byte, error) {
	addr, err := vesta.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return vesta.Address{}, nil, restutil.BadRequest(errors.WithMessage(err, "address"))
	}
	body, err := io.ReadAll(req.Body)
	if err != nil {
		return vesta.Address{}, nil, restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	signer, err := s.verifier.Verify(req, body)
	if err != nil {
		return vesta.Address{}, nil, restutil.Forbidden(err)
	}
	if signer != addr {
		return vesta.Address{}, nil, restutil.Forbidden(errors.New("signer does not match account"))
	}
	return addr, body, nil
}

func parseAmount(body []byte) (*big.Int, error) {
	var payload AmountBody
	if err := restutil.ParseJSON(bytes.NewReader(body), &payload); err != nil {
		return nil, restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if payload.Amount == nil {
		return nil, restutil.BadRequest(errors.New("amount: missing"))
	}
	return (*big.Int)(payload.Amount), nil
}

func (s *Stakers) handleStake(w http.ResponseWriter, req *http.Request) error {
	addr, body, err := s.authenticate(req)
	if err != nil {
		return err
	}
	amount, err := parseAmount(body)
	if err != nil {
		return err
	}
	if err := s.led.Stake(addr, amount); err != nil {
		return restutil.LedgerError(err)
	}
	info, err := s.led.GetStakingInfo(addr)
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, convertStakingInfo(info))
}

func (s *Stakers) handleUnstake(w http.ResponseWriter, req *http.Request) error {
	addr, body, err := s.authenticate(req)
	if err != nil {
		return err
	}
	amount, err := parseAmount(body)
	if err != nil {
		return err
	}
	if err := s.led.Unstake(addr, amount); err != nil {
		return restutil.LedgerError(err)
	}
	info, err := s.led.GetStakingInfo(addr)
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, convertStakingInfo(info))
}

func (s *Stakers) handleClaim(w http.ResponseWriter, req *http.Request) error {
	addr, _, err := s.authenticate(req)
	if err != nil {
		return err
	}
	claimed, err := s.led.ClaimRewards(addr)
	if err != nil {
		return restutil.LedgerError(err)
	}
	return restutil.WriteJSON(w, &ClaimResult{
		Claimed: (*math.HexOrDecimal256)(claimed),
	})
}

func (s *Stakers) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{address}").
		Methods(http.MethodGet).
		Name("GET /stakers/{address}").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleGetStaker))
	sub.Path("/{address}/stake").
		Methods(http.MethodPost).
		Name("POST /stakers/{address}/stake").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleStake))
	sub.Path("/{address}/unstake").
		Methods(http.MethodPost).
		Name("POST /stakers/{address}/unstake").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleUnstake))
	sub.Path("/{address}/claim").
		Methods(http.MethodPost).
		Name("POST /stakers/{address}/claim").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleClaim))
}
