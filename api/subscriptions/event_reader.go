// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"encoding/json"
	"math"

	"github.com/vestachain/vesta/eventdb"
	"github.com/vestachain/vesta/vesta"
)

// readLimit bounds the number of rows pulled from the event index per
// read, so a subscriber replaying from far back cannot hold a query
// open over the whole history.
const readLimit = 256

// eventReader tails the event index from a given sequence position,
// applying an optional name/account filter.
type eventReader struct {
	db      *eventdb.EventDB
	name    string
	account *vesta.Address
	pos     int64
}

func newEventReader(db *eventdb.EventDB, position int64, name string, account *vesta.Address) *eventReader {
	return &eventReader{
		db:      db,
		name:    name,
		account: account,
		pos:     position,
	}
}

// Read returns the marshaled messages for events recorded after the
// current position and advances the position past them. The second
// return value reports whether another read may yield more without
// waiting.
func (er *eventReader) Read() ([][]byte, bool, error) {
	events, err := er.db.Filter(&eventdb.Filter{
		Name:    er.name,
		Account: er.account,
		Range: &eventdb.Range{
			Unit: eventdb.Seq,
			From: uint64(er.pos) + 1,
			To:   math.MaxInt64,
		},
		Options: &eventdb.Options{Offset: 0, Limit: readLimit},
	})
	if err != nil {
		return nil, false, err
	}
	var msgs [][]byte
	for _, ev := range events {
		msg, err := json.Marshal(convertEvent(ev))
		if err != nil {
			return nil, false, err
		}
		msgs = append(msgs, msg)
	}
	if len(events) > 0 {
		er.pos = events[len(events)-1].Seq
	}
	return msgs, len(events) == readLimit, nil
}
