// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vesta

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProtocolConstants(t *testing.T) {
	assert.Equal(t, uint64(604800), MinLockPeriod)
	assert.Equal(t, uint64(31536000), SecondsPerYear)
	assert.True(t, AnnualRateBps < RatePrecision)
	assert.True(t, EarlyUnstakePenaltyBps < RatePrecision)

	min := new(big.Int).Mul(big.NewInt(100), big.NewInt(1e18))
	assert.Equal(t, 0, MinStakeAmount.Cmp(min))
}
