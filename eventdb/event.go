// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

import (
	"math/big"

	"github.com/vestachain/vesta/ledger"
	"github.com/vestachain/vesta/vesta"
)

const eventTableSchema = `CREATE TABLE IF NOT EXISTS event (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	account BLOB NOT NULL,
	amount TEXT NOT NULL,
	penalty TEXT NOT NULL,
	ts INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS event_account ON event(account);
CREATE INDEX IF NOT EXISTS event_ts ON event(ts);`

// Event is one indexed row of the ledger's event history. Seq is assigned by
// the index on insert; amounts are stored as decimal text, they do not fit a
// sqlite integer.
type Event struct {
	Seq       int64         `json:"seq"`
	Name      string        `json:"name"`
	Account   vesta.Address `json:"account"`
	Amount    *big.Int      `json:"amount"`
	Penalty   *big.Int      `json:"penalty"`
	Timestamp uint64        `json:"timestamp"`
}

// NewEvent converts a ledger event into its index row.
func NewEvent(ev *ledger.Event) *Event {
	return &Event{
		Name:      ev.Name,
		Account:   ev.Account,
		Amount:    new(big.Int).Set(ev.Amount),
		Penalty:   new(big.Int).Set(ev.Penalty),
		Timestamp: ev.Timestamp,
	}
}
