// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sslot

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vestachain/vesta/test/datagen"
	"github.com/vestachain/vesta/vesta"
)

func TestAddress(t *testing.T) {
	ctx := newTestContext()
	cell := NewAddress(ctx, vesta.Bytes32{0x01})

	got, err := cell.Get()
	assert.NoError(t, err)
	assert.Equal(t, vesta.Address{}, got)

	addr := datagen.RandAddress()
	cell.Set(&addr)
	got, err = cell.Get()
	assert.NoError(t, err)
	assert.Equal(t, addr, got)

	cell.Set(nil)
	got, err = cell.Get()
	assert.NoError(t, err)
	assert.Equal(t, vesta.Address{}, got)
}

func TestBool(t *testing.T) {
	ctx := newTestContext()
	flag := NewBool(ctx, vesta.Bytes32{0x01})

	got, err := flag.Get()
	assert.NoError(t, err)
	assert.False(t, got)

	flag.Set(true)
	got, err = flag.Get()
	assert.NoError(t, err)
	assert.True(t, got)

	flag.Set(false)
	got, err = flag.Get()
	assert.NoError(t, err)
	assert.False(t, got)
}
