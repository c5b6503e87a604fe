// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"math/big"

	"github.com/vestachain/vesta/vesta"
)

var (
	annualRate    = new(big.Int).SetUint64(vesta.AnnualRateBps)
	penaltyRate   = new(big.Int).SetUint64(vesta.EarlyUnstakePenaltyBps)
	ratePrecision = new(big.Int).SetUint64(vesta.RatePrecision)

	// rewardDivisor scales the annual rate in bps down to per-second accrual.
	rewardDivisor = new(big.Int).Mul(ratePrecision, new(big.Int).SetUint64(vesta.SecondsPerYear))
)

// StakerRecord is the per-account row of the ledger. A record comes to life
// on the first stake and is never deleted; a full exit zeroes the principal
// and clears Active, leaving the other fields in place.
type StakerRecord struct {
	StakedAmount       *big.Int // current principal
	StakingStartTime   uint64   // set when the record turns active; top-ups do not reset it
	LastRewardCalc     uint64   // the point up to which rewards are folded into AccumulatedRewards
	AccumulatedRewards *big.Int // rewards materialized but not yet paid out
	Active             bool
}

// CalcRewards returns the rewards the principal has earned since the last
// accrual point, at the given time. The division floors; the sub-unit
// remainder of a pricing span is dropped, never carried over.
func (r *StakerRecord) CalcRewards(now uint64) *big.Int {
	if !r.Active || r.StakedAmount.Sign() == 0 {
		return &big.Int{}
	}
	if now <= r.LastRewardCalc {
		return &big.Int{}
	}
	x := new(big.Int).SetUint64(now - r.LastRewardCalc)
	x.Mul(x, r.StakedAmount)
	x.Mul(x, annualRate)
	x.Div(x, rewardDivisor)
	return x
}

// Accrue folds the rewards earned up to now into AccumulatedRewards and
// advances the accrual point. The point always advances, so a span is never
// priced twice even when it floors to nothing. Must run before any change
// to the principal, otherwise the span would be priced against an amount it
// never held.
func (r *StakerRecord) Accrue(now uint64) {
	if !r.Active || now <= r.LastRewardCalc {
		return
	}
	if rewards := r.CalcRewards(now); rewards.Sign() != 0 {
		r.AccumulatedRewards.Add(r.AccumulatedRewards, rewards)
	}
	r.LastRewardCalc = now
}

// EarlyPenalty returns the penalty charged on withdrawing amount at the
// given time. Zero once the lock period has elapsed.
func (r *StakerRecord) EarlyPenalty(amount *big.Int, now uint64) *big.Int {
	if now >= r.StakingStartTime+vesta.MinLockPeriod {
		return &big.Int{}
	}
	x := new(big.Int).Set(amount)
	x.Mul(x, penaltyRate)
	x.Div(x, ratePrecision)
	return x
}
