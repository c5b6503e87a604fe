// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vestachain/vesta/vesta"
)

func newTestRecord(staked int64) *StakerRecord {
	return &StakerRecord{
		StakedAmount:       new(big.Int).Mul(big.NewInt(staked), vesta.DecimalsUnit),
		AccumulatedRewards: &big.Int{},
		Active:             true,
	}
}

func TestCalcRewards(t *testing.T) {
	r := newTestRecord(1000)

	// a full year at 10% pays exactly a tenth of the principal
	expected := new(big.Int).Mul(big.NewInt(100), vesta.DecimalsUnit)
	assert.Equal(t, expected, r.CalcRewards(vesta.SecondsPerYear))

	// half the time, half the rewards
	assert.Equal(t, new(big.Int).Div(expected, big.NewInt(2)), r.CalcRewards(vesta.SecondsPerYear/2))

	// no elapsed time, no rewards
	assert.Equal(t, 0, r.CalcRewards(0).Sign())

	// clock behind the accrual point, still nothing
	r.LastRewardCalc = 100
	assert.Equal(t, 0, r.CalcRewards(50).Sign())

	// inactive records never accrue
	r.LastRewardCalc = 0
	r.Active = false
	assert.Equal(t, 0, r.CalcRewards(vesta.SecondsPerYear).Sign())

	// neither do active records with nothing staked
	r.Active = true
	r.StakedAmount = &big.Int{}
	assert.Equal(t, 0, r.CalcRewards(vesta.SecondsPerYear).Sign())
}

func TestAccrue(t *testing.T) {
	r := newTestRecord(1000)

	r.Accrue(vesta.SecondsPerYear)
	expected := new(big.Int).Mul(big.NewInt(100), vesta.DecimalsUnit)
	assert.Equal(t, expected, r.AccumulatedRewards)
	assert.Equal(t, vesta.SecondsPerYear, r.LastRewardCalc)

	// accruing twice at the same point changes nothing
	r.Accrue(vesta.SecondsPerYear)
	assert.Equal(t, expected, r.AccumulatedRewards)

	// inactive records keep what they have
	r.Active = false
	r.Accrue(2 * vesta.SecondsPerYear)
	assert.Equal(t, expected, r.AccumulatedRewards)
	assert.Equal(t, vesta.SecondsPerYear, r.LastRewardCalc)
}

func TestAccrueDust(t *testing.T) {
	// principal small enough that one second floors to zero
	r := &StakerRecord{
		StakedAmount:       big.NewInt(1_000_000),
		AccumulatedRewards: &big.Int{},
		Active:             true,
	}

	r.Accrue(1)
	assert.Equal(t, 0, r.AccumulatedRewards.Sign())
	assert.Equal(t, uint64(1), r.LastRewardCalc)

	// the accrual point advanced anyway, so the first second is gone:
	// a year ends up one second short of the full 100000
	r.Accrue(vesta.SecondsPerYear)
	assert.Equal(t, big.NewInt(99_999), r.AccumulatedRewards)
}

func TestEarlyPenalty(t *testing.T) {
	r := newTestRecord(1000)
	r.StakingStartTime = 1000

	amount := new(big.Int).Mul(big.NewInt(500), vesta.DecimalsUnit)

	// within the lock period the penalty is 5% of the withdrawn amount
	expected := new(big.Int).Mul(big.NewInt(25), vesta.DecimalsUnit)
	assert.Equal(t, expected, r.EarlyPenalty(amount, 1000))
	assert.Equal(t, expected, r.EarlyPenalty(amount, 1000+vesta.MinLockPeriod-1))

	// from the boundary on it is free
	assert.Equal(t, 0, r.EarlyPenalty(amount, 1000+vesta.MinLockPeriod).Sign())
	assert.Equal(t, 0, r.EarlyPenalty(amount, 1000+2*vesta.MinLockPeriod).Sign())

	// the division floors
	assert.Equal(t, big.NewInt(49), r.EarlyPenalty(big.NewInt(999), 1000))
}
