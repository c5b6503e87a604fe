// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"math/big"
	"time"

	"github.com/vestachain/vesta/metrics"
	"github.com/vestachain/vesta/vesta"
)

var (
	metricOpCount     = metrics.LazyLoadCounterVec("ledger_op_count", []string{"op", "outcome"})
	metricOpDuration  = metrics.LazyLoadHistogramVec("ledger_op_duration_ms", []string{"op"}, metrics.BucketHTTPReqs)
	metricTotalStaked = metrics.LazyLoadGauge("ledger_total_staked_gauge")
	metricRewardsPaid = metrics.LazyLoadGauge("ledger_rewards_distributed_gauge")
	metricPaused      = metrics.LazyLoadGauge("ledger_paused_gauge")
)

// opDone records one finished operation. Rejections and faults count under
// outcome "err", so the rate of refused calls is visible next to the
// accepted ones.
func opDone(op string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "err"
	}
	metricOpCount().AddWithLabel(1, map[string]string{"op": op, "outcome": outcome})
	metricOpDuration().ObserveWithLabels(time.Since(start).Milliseconds(), map[string]string{"op": op})
}

// updateStakedGauge samples the committed total, scaled down to whole
// tokens. A failed read only costs the sample.
func (l *Ledger) updateStakedGauge(store *storage) {
	total, err := store.TotalStaked()
	if err != nil {
		return
	}
	metricTotalStaked().Set(new(big.Int).Div(total, vesta.DecimalsUnit).Int64())
}

func (l *Ledger) updateRewardsGauge(store *storage) {
	total, err := store.TotalRewards()
	if err != nil {
		return
	}
	metricRewardsPaid().Set(new(big.Int).Div(total, vesta.DecimalsUnit).Int64())
}
