// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vestachain/vesta/eventdb"
	"github.com/vestachain/vesta/vesta"
)

// EventMessage is the wire form of a ledger event pushed over a
// websocket subscription. Amounts are strings, the values do not
// survive a float64 round trip.
type EventMessage struct {
	Seq       int64                 `json:"seq"`
	Name      string                `json:"name"`
	Account   vesta.Address         `json:"account"`
	Amount    *math.HexOrDecimal256 `json:"amount,string"`
	Penalty   *math.HexOrDecimal256 `json:"penalty,string"`
	Timestamp uint64                `json:"timestamp"`
}

func convertEvent(ev *eventdb.Event) *EventMessage {
	return &EventMessage{
		Seq:       ev.Seq,
		Name:      ev.Name,
		Account:   ev.Account,
		Amount:    (*math.HexOrDecimal256)(ev.Amount),
		Penalty:   (*math.HexOrDecimal256)(ev.Penalty),
		Timestamp: ev.Timestamp,
	}
}
