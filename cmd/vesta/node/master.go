// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"crypto/ecdsa"

	"github.com/vestachain/vesta/vesta"
)

// Master is the operator identity of the node. Its address is the
// caller of the admin ledger operations, so pausing and recovery only
// work when the master is also the ledger owner.
type Master struct {
	PrivateKey *ecdsa.PrivateKey
}

func (m *Master) Address() vesta.Address {
	return vesta.PubkeyToAddress(&m.PrivateKey.PublicKey)
}
