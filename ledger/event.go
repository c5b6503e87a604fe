// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"math/big"

	"github.com/vestachain/vesta/vesta"
)

// Event names.
const (
	NameStaked         = "Staked"
	NameUnstaked       = "Unstaked"
	NameRewardsClaimed = "RewardsClaimed"
)

// Event is posted after a mutating operation has committed. For
// RewardsClaimed events Amount carries the paid rewards; Penalty is only
// ever nonzero on Unstaked events.
type Event struct {
	Name      string
	Account   vesta.Address
	Amount    *big.Int
	Penalty   *big.Int
	Timestamp uint64
}
