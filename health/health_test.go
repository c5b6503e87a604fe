// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth_MarkLedgerProbe(t *testing.T) {
	h := New(time.Second)

	h.MarkLedgerProbe(false)

	if h.lastPaused == nil || *h.lastPaused {
		t.Errorf("expected lastPaused to be false, got %v", h.lastPaused)
	}

	if time.Since(h.lastProbe) > time.Second {
		t.Errorf("lastProbe timestamp is not recent")
	}

	h.BootstrapStatus(true)

	status, err := h.Status()
	require.NoError(t, err)

	assert.True(t, status.Healthy)
}

func TestHealth_BootstrapStatus(t *testing.T) {
	h := New(time.Second)

	h.BootstrapStatus(true)
	if !h.bootstrapped {
		t.Errorf("expected bootstrapped to be true, got false")
	}

	h.BootstrapStatus(false)
	if h.bootstrapped {
		t.Errorf("expected bootstrapped to be false, got true")
	}

	status, err := h.Status()
	require.NoError(t, err)

	assert.False(t, status.Healthy)
}

func TestHealth_Status(t *testing.T) {
	h := New(time.Second)

	h.MarkLedgerProbe(true)
	h.BootstrapStatus(true)

	status, err := h.Status()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !status.Healthy {
		t.Errorf("expected healthy to be true, got false")
	}

	if status.LedgerProbe.Paused == nil || !*status.LedgerProbe.Paused {
		t.Errorf("expected probe to report the paused flag")
	}

	if status.LedgerProbe.Timestamp == nil || time.Since(*status.LedgerProbe.Timestamp) > time.Second {
		t.Errorf("probe timestamp is not recent")
	}

	if !status.Bootstrapped {
		t.Errorf("expected bootstrapped to be true, got false")
	}
}

func TestHealth_StaleProbe(t *testing.T) {
	h := New(time.Millisecond)

	h.MarkLedgerProbe(false)
	h.BootstrapStatus(true)

	time.Sleep(10 * time.Millisecond)

	status, err := h.Status()
	require.NoError(t, err)

	assert.False(t, status.Healthy)
}
