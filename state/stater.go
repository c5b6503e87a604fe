// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/vestachain/vesta/kv"
)

// Stater is the factory of state instances over one shared store.
// Each instance carries its own journal, so concurrent instances never
// observe each other's uncommitted changes.
type Stater struct {
	store kv.GetPutter
}

// NewStater creates the stater.
func NewStater(store kv.GetPutter) *Stater {
	return &Stater{store: store}
}

// NewState create a fresh state instance on top of the committed rows.
func (s *Stater) NewState() *State {
	return New(s.store)
}
