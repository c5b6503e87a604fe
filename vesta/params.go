// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vesta

import "math/big"

// Constants of the staking protocol. They are part of the externally visible
// contract and fixed at deployment, never runtime-configurable.
const (
	TokenDecimals = 18 // decimal precision of the staking token.

	SecondsPerDay  uint64 = 24 * 60 * 60
	SecondsPerYear uint64 = 365 * SecondsPerDay

	// MinLockPeriod is the duration (unit: second) a stake must be held before
	// unstaking avoids the early withdrawal penalty. Counted from the staking
	// start time, which top-ups do not reset.
	MinLockPeriod uint64 = 7 * SecondsPerDay

	// AnnualRateBps is the yearly reward rate in basis points of RatePrecision.
	AnnualRateBps uint64 = 1000 // 10%

	// EarlyUnstakePenaltyBps is the penalty charged on principal withdrawn
	// before MinLockPeriod elapses, in basis points of RatePrecision.
	EarlyUnstakePenaltyBps uint64 = 500 // 5%

	// RatePrecision is the denominator for all basis point math.
	RatePrecision uint64 = 10000
)

var (
	// DecimalsUnit is 10^TokenDecimals, the scale of one whole token.
	DecimalsUnit = new(big.Int).Exp(big.NewInt(10), big.NewInt(TokenDecimals), nil)

	// MinStakeAmount is the smallest principal a single stake call accepts.
	MinStakeAmount = new(big.Int).Mul(big.NewInt(100), DecimalsUnit)
)
