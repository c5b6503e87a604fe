// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sslot

import (
	"github.com/vestachain/vesta/state"
	"github.com/vestachain/vesta/vesta"
)

// Context binds storage cells to the address that owns them and the state
// instance they read from and write to.
type Context struct {
	address vesta.Address
	state   *state.State
}

func NewContext(address vesta.Address, state *state.State) *Context {
	return &Context{
		address: address,
		state:   state,
	}
}

func (c *Context) Address() vesta.Address {
	return c.address
}

func (c *Context) State() *state.State {
	return c.state
}
