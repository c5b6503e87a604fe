// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"sync/atomic"
	"time"
)

// Clock supplies the time base of the ledger as unix seconds. It is an
// injected dependency so tests and replay tooling can move time freely.
type Clock interface {
	Now() uint64
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() uint64 {
	return uint64(time.Now().Unix())
}

// ManualClock is a settable clock. It only moves when told to.
type ManualClock struct {
	now atomic.Uint64
}

// NewManualClock creates a manual clock set to the given time.
func NewManualClock(now uint64) *ManualClock {
	c := &ManualClock{}
	c.now.Store(now)
	return c
}

func (c *ManualClock) Now() uint64 {
	return c.now.Load()
}

// Set moves the clock to the given time.
func (c *ManualClock) Set(now uint64) {
	c.now.Store(now)
}

// Advance moves the clock forward by d seconds.
func (c *ManualClock) Advance(d uint64) {
	c.now.Add(d)
}
