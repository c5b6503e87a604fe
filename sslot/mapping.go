// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sslot

import (
	"reflect"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vestachain/vesta/vesta"
)

type Key interface {
	Bytes() []byte
}

// Mapping is a key/value storage abstraction, similar to the mapping in Solidity.
// Values are rlp encoded, so any rlp encodable type works as V.
type Mapping[K Key, V any] struct {
	context *Context
	basePos vesta.Bytes32
}

func NewMapping[K Key, V any](context *Context, pos vesta.Bytes32) *Mapping[K, V] {
	return &Mapping[K, V]{context: context, basePos: pos}
}

// Position returns the storage slot the given key maps to.
func (m *Mapping[K, V]) Position(key K) vesta.Bytes32 {
	return vesta.Blake2b(key.Bytes(), m.basePos.Bytes())
}

// Get loads the value stored for the given key.
// Missing keys yield the zero value of V; pointer-typed values stay nil.
func (m *Mapping[K, V]) Get(key K) (value V, err error) {
	err = m.context.state.DecodeStorage(m.context.address, m.Position(key), func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		if reflect.ValueOf(value).Kind() == reflect.Ptr {
			value = reflect.New(reflect.TypeOf(value).Elem()).Interface().(V)
		}
		return rlp.DecodeBytes(raw, &value)
	})
	return
}

// Set stores the value for the given key. Zero values clear the slot, so a
// followup Get returns the same zero value without touching the store.
func (m *Mapping[K, V]) Set(key K, value V) error {
	return m.context.state.EncodeStorage(m.context.address, m.Position(key), func() ([]byte, error) {
		if reflect.ValueOf(&value).Elem().IsZero() {
			return nil, nil
		}
		return rlp.EncodeToBytes(value)
	})
}
