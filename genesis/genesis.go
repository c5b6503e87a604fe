// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis presets the deployment-time state of the staking ledger:
// the owning identity, the token books and the prefunded balances.
package genesis

import (
	"github.com/pkg/errors"

	"github.com/vestachain/vesta/kv"
	"github.com/vestachain/vesta/state"
	"github.com/vestachain/vesta/vesta"
)

// Well-known addresses of the deployment, derived from names.
var (
	// ContractAddress is where the staking ledger keeps its storage.
	ContractAddress = vesta.BytesToAddress([]byte("vesta-staking-ledger"))

	// TokenAddress is where the VST token book lives.
	TokenAddress = vesta.BytesToAddress([]byte("vesta-token"))
)

// genesisIDKey keys the committed genesis ID in the main database. The key
// shares the store with state rows, which carry their own prefixes.
var genesisIDKey = []byte("genesis-id")

// Genesis is a ready-to-build genesis preset.
type Genesis struct {
	builder *Builder
	id      vesta.Bytes32
	name    string
}

// ID returns the genesis ID, which identifies the deployment.
func (g *Genesis) ID() vesta.Bytes32 { return g.id }

// Name returns the deployment name.
func (g *Genesis) Name() string { return g.name }

// Build builds the genesis state on top of the given stater.
func (g *Genesis) Build(stater *state.Stater) error {
	return g.builder.Build(stater)
}

// Initialize commits the genesis state to the store on first use. On later
// runs it verifies the store was built from the same preset, so that a data
// directory cannot silently be reused across deployments.
func (g *Genesis) Initialize(store kv.GetPutter) error {
	stored, err := store.Get(genesisIDKey)
	if err != nil {
		if !store.IsNotFound(err) {
			return err
		}
		if err := g.Build(state.NewStater(store)); err != nil {
			return err
		}
		return store.Put(genesisIDKey, g.id[:])
	}

	if id := vesta.BytesToBytes32(stored); id != g.id {
		return errors.Errorf("database initialized for genesis %v, preset is %v", id, g.id)
	}
	return nil
}
