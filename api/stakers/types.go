// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakers

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vestachain/vesta/ledger"
)

// StakingInfo is the staking projection of one account at query time.
type StakingInfo struct {
	StakedAmount     *math.HexOrDecimal256 `json:"stakedAmount,string"`
	PendingRewards   *math.HexOrDecimal256 `json:"pendingRewards,string"`
	StakingStartTime uint64                `json:"stakingStartTime"`
	Active           bool                  `json:"active"`
}

func convertStakingInfo(info *ledger.StakingInfo) *StakingInfo {
	return &StakingInfo{
		StakedAmount:     (*math.HexOrDecimal256)(info.StakedAmount),
		PendingRewards:   (*math.HexOrDecimal256)(info.PendingRewards),
		StakingStartTime: info.StakingStartTime,
		Active:           info.Active,
	}
}

// AmountBody carries the amount of a stake or unstake request. It accepts
// decimal or 0x-hex strings.
type AmountBody struct {
	Amount *math.HexOrDecimal256 `json:"amount,string"`
}

// ClaimResult reports the rewards paid out by a claim.
type ClaimResult struct {
	Claimed *math.HexOrDecimal256 `json:"claimed,string"`
}
