// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sslot

import (
	"github.com/vestachain/vesta/vesta"
)

// Bool is a wrapper for storage and retrieval of a bool flag. A cleared slot
// reads as false, any non-zero storage value reads as true.
type Bool struct {
	context *Context
	pos     vesta.Bytes32
}

func NewBool(context *Context, pos vesta.Bytes32) *Bool {
	return &Bool{context: context, pos: pos}
}

func (b *Bool) Get() (bool, error) {
	storage, err := b.context.state.GetStorage(b.context.address, b.pos)
	if err != nil {
		return false, err
	}
	return !storage.IsZero(), nil
}

func (b *Bool) Set(value bool) {
	var storage vesta.Bytes32
	if value {
		storage[31] = 1
	}
	b.context.state.SetStorage(b.context.address, b.pos, storage)
}
