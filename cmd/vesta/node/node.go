// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package node runs the background loops of a ledger node: the event
// recorder feeding the event index and the housekeeping probes.
package node

import (
	"context"
	"time"

	"github.com/beevik/ntp"
	"github.com/ethereum/go-ethereum/common"

	"github.com/vestachain/vesta/co"
	"github.com/vestachain/vesta/eventdb"
	"github.com/vestachain/vesta/health"
	"github.com/vestachain/vesta/ledger"
	"github.com/vestachain/vesta/log"
)

var logger = log.WithContext("pkg", "node")

const (
	// HealthProbeInterval paces the ledger liveness probe; the health
	// tracker must be created with the same interval.
	HealthProbeInterval = 10 * time.Second

	// reward accrual is priced off the wall clock, so drift beyond this
	// is worth an operator warning
	maxClockOffset = 5 * time.Second

	clockSyncInterval = 10 * time.Minute
)

// Node ties the ledger to its background services.
type Node struct {
	goes co.Goes

	led     *ledger.Ledger
	eventDB *eventdb.EventDB
	tick    *co.Signal
	health  *health.Health
}

func New(
	led *ledger.Ledger,
	eventDB *eventdb.EventDB,
	tick *co.Signal,
	healthStatus *health.Health,
) *Node {
	return &Node{
		led:     led,
		eventDB: eventDB,
		tick:    tick,
		health:  healthStatus,
	}
}

// Run starts the loops and blocks until ctx is done and they drained.
func (n *Node) Run(ctx context.Context) error {
	defer n.goes.Wait()

	n.goes.Go(func() { n.recorderLoop(ctx) })
	n.goes.Go(func() { n.houseKeeping(ctx) })

	return nil
}

// recorderLoop moves committed ledger events into the event index and
// wakes the subscription pipes. Events queued behind the first one are
// drained into the same insert, one sqlite transaction per wakeup.
func (n *Node) recorderLoop(ctx context.Context) {
	logger.Debug("enter recorder loop")
	defer logger.Debug("leave recorder loop")

	ch := make(chan *ledger.Event, 256)
	sub := n.led.SubscribeEvents(ch)
	defer sub.Unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-ch:
			events := []*eventdb.Event{eventdb.NewEvent(ev)}
		drain:
			for {
				select {
				case more := <-ch:
					events = append(events, eventdb.NewEvent(more))
				default:
					break drain
				}
			}
			if err := n.eventDB.Insert(events); err != nil {
				logger.Warn("failed to index events", "err", err)
				continue
			}
			metricEventsIndexed().Add(int64(len(events)))
			n.tick.Broadcast()
		}
	}
}

func (n *Node) houseKeeping(ctx context.Context) {
	logger.Debug("enter house keeping")
	defer logger.Debug("leave house keeping")

	probeTicker := time.NewTicker(HealthProbeInterval)
	defer probeTicker.Stop()
	clockSyncTicker := time.NewTicker(clockSyncInterval)
	defer clockSyncTicker.Stop()

	// an immediate probe, or health would report stale until the first tick
	n.probeLedger()

	for {
		select {
		case <-ctx.Done():
			return
		case <-probeTicker.C:
			n.probeLedger()
		case <-clockSyncTicker.C:
			go checkClockOffset()
		}
	}
}

func (n *Node) probeLedger() {
	paused, err := n.led.Paused()
	if err != nil {
		logger.Warn("ledger probe failed", "err", err)
		return
	}
	n.health.MarkLedgerProbe(paused)
}

func checkClockOffset() {
	resp, err := ntp.Query("pool.ntp.org")
	if err != nil {
		logger.Debug("failed to access NTP", "err", err)
		return
	}
	if resp.ClockOffset > maxClockOffset {
		logger.Warn("clock offset detected", "offset", common.PrettyDuration(resp.ClockOffset))
	}
}
