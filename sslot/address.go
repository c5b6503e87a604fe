// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sslot

import (
	"github.com/vestachain/vesta/vesta"
)

// Address is a wrapper for storage and retrieval of an address. Similar to storing an address in a smart contract.
type Address struct {
	context *Context
	pos     vesta.Bytes32
}

func NewAddress(context *Context, pos vesta.Bytes32) *Address {
	return &Address{context: context, pos: pos}
}

func (a *Address) Get() (vesta.Address, error) {
	storage, err := a.context.state.GetStorage(a.context.address, a.pos)
	if err != nil {
		return vesta.Address{}, err
	}
	return vesta.BytesToAddress(storage.Bytes()), nil
}

func (a *Address) Set(addr *vesta.Address) {
	var storage vesta.Bytes32
	if addr != nil {
		storage = vesta.BytesToBytes32(addr.Bytes())
	}
	a.context.state.SetStorage(a.context.address, a.pos, storage)
}
