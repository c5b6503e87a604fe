// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package health reports service liveness to the admin and api servers.
package health

import (
	"sync"
	"time"
)

// defaultProbeTolerance is how many probe intervals may pass without a
// successful ledger read before the service reports unhealthy.
const defaultProbeTolerance = 3

type LedgerProbe struct {
	Paused    *bool      `json:"paused"`
	Timestamp *time.Time `json:"timestamp"`
}

type Status struct {
	Healthy      bool         `json:"healthy"`
	LedgerProbe  *LedgerProbe `json:"ledgerProbe"`
	Bootstrapped bool         `json:"bootstrapped"`
}

type Health struct {
	lock                 sync.RWMutex
	lastProbe            time.Time
	lastPaused           *bool
	bootstrapped         bool
	maxTimeBetweenProbes time.Duration
}

// New creates a health tracker expecting a successful ledger probe at
// least every probeInterval, with slack for slow reads.
func New(probeInterval time.Duration) *Health {
	return &Health{
		maxTimeBetweenProbes: probeInterval * defaultProbeTolerance,
	}
}

// MarkLedgerProbe records a successful ledger read and the paused flag
// it observed.
func (h *Health) MarkLedgerProbe(paused bool) {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.lastProbe = time.Now()
	h.lastPaused = &paused
}

// BootstrapStatus flags whether startup (db open, genesis applied,
// listeners up) has completed.
func (h *Health) BootstrapStatus(bootstrapped bool) {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.bootstrapped = bootstrapped
}

func (h *Health) Status() (*Status, error) {
	h.lock.RLock()
	defer h.lock.RUnlock()

	lastProbe := h.lastProbe
	probe := &LedgerProbe{
		Paused:    h.lastPaused,
		Timestamp: &lastProbe,
	}

	healthy := h.bootstrapped &&
		time.Since(h.lastProbe) <= h.maxTimeBetweenProbes

	return &Status{
		Healthy:      healthy,
		LedgerProbe:  probe,
		Bootstrapped: h.bootstrapped,
	}, nil
}
