// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package stats exposes the aggregate ledger view. The numbers are read
// from storage on every call, so concurrent identical requests are
// coalesced into one read.
package stats

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"golang.org/x/sync/singleflight"

	"github.com/vestachain/vesta/api/restutil"
	"github.com/vestachain/vesta/ledger"
)

// ContractStats is the response shape of the stats endpoint.
type ContractStats struct {
	TotalStaked             *math.HexOrDecimal256 `json:"totalStaked,string"`
	TotalRewardsDistributed *math.HexOrDecimal256 `json:"totalRewardsDistributed,string"`
	TokenBalance            *math.HexOrDecimal256 `json:"tokenBalance,string"`
}

type Stats struct {
	led   *ledger.Ledger
	group singleflight.Group
}

func New(led *ledger.Ledger) *Stats {
	return &Stats{led: led}
}

func (s *Stats) handleGetStats(w http.ResponseWriter, _ *http.Request) error {
	res, err, _ := s.group.Do("stats", func() (interface{}, error) {
		return s.led.GetContractStats()
	})
	if err != nil {
		return err
	}
	stats := res.(*ledger.Stats)
	return restutil.WriteJSON(w, &ContractStats{
		TotalStaked:             (*math.HexOrDecimal256)(stats.TotalStaked),
		TotalRewardsDistributed: (*math.HexOrDecimal256)(stats.TotalRewardsDistributed),
		TokenBalance:            (*math.HexOrDecimal256)(stats.TokenBalance),
	})
}

func (s *Stats) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /ledger/stats").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleGetStats))
}
