// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sslot

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vestachain/vesta/lvldb"
	"github.com/vestachain/vesta/state"
	"github.com/vestachain/vesta/test/datagen"
	"github.com/vestachain/vesta/vesta"
)

type testStruct struct {
	Field1 uint64
	Field2 uint64
	Addr1  vesta.Address
	Bytes1 vesta.Bytes32
}

// newTestContext returns a fresh Context over an in-memory store.
func newTestContext() *Context {
	db, _ := lvldb.NewMem()
	st := state.New(db)
	return NewContext(vesta.BytesToAddress([]byte("ledger")), st)
}

func TestMappingStructPointer(t *testing.T) {
	ctx := newTestContext()
	mapping := NewMapping[vesta.Bytes32, *testStruct](ctx, vesta.Bytes32{1})

	key := datagen.RandBytes32()
	value := &testStruct{
		Field1: 100,
		Field2: 200,
		Addr1:  datagen.RandAddress(),
		Bytes1: datagen.RandBytes32(),
	}

	require.NoError(t, mapping.Set(key, value))

	got, err := mapping.Get(key)
	require.NoError(t, err)
	assert.Equal(t, value, got)

	// missing keys stay nil for pointer values
	got, err = mapping.Get(datagen.RandBytes32())
	require.NoError(t, err)
	assert.Nil(t, got)

	// nil clears the slot
	require.NoError(t, mapping.Set(key, nil))
	got, err = mapping.Get(key)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMappingAddressValue(t *testing.T) {
	ctx := newTestContext()
	mapping := NewMapping[vesta.Bytes32, vesta.Address](ctx, vesta.Bytes32{1})

	key := datagen.RandBytes32()
	addr := datagen.RandAddress()

	require.NoError(t, mapping.Set(key, addr))
	got, err := mapping.Get(key)
	require.NoError(t, err)
	assert.Equal(t, addr, got)

	got, err = mapping.Get(datagen.RandBytes32())
	require.NoError(t, err)
	assert.Equal(t, vesta.Address{}, got)

	// zero value clears the slot
	require.NoError(t, mapping.Set(key, vesta.Address{}))
	raw, err := ctx.State().GetRawStorage(ctx.Address(), mapping.Position(key))
	require.NoError(t, err)
	assert.Empty(t, raw)
}

func TestMappingUint64Value(t *testing.T) {
	ctx := newTestContext()
	mapping := NewMapping[vesta.Address, uint64](ctx, vesta.Bytes32{1})

	key := datagen.RandAddress()

	require.NoError(t, mapping.Set(key, 42))
	got, err := mapping.Get(key)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), got)

	got, err = mapping.Get(datagen.RandAddress())
	require.NoError(t, err)
	assert.Equal(t, uint64(0), got)
}

func TestMappingBigIntPointer(t *testing.T) {
	ctx := newTestContext()
	mapping := NewMapping[vesta.Address, *big.Int](ctx, vesta.Bytes32{1})

	key := datagen.RandAddress()

	require.NoError(t, mapping.Set(key, big.NewInt(1e9)))
	got, err := mapping.Get(key)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1e9), got)
}

func TestMappingCorruptValue(t *testing.T) {
	ctx := newTestContext()
	mapping := NewMapping[vesta.Address, vesta.Address](ctx, vesta.BytesToBytes32([]byte("base")))

	key := datagen.RandAddress()
	ctx.State().SetRawStorage(ctx.Address(), mapping.Position(key), rlp.RawValue{0xFF})

	got, err := mapping.Get(key)
	assert.Error(t, err)
	assert.Equal(t, vesta.Address{}, got)
}
