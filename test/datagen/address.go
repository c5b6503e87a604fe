// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import (
	"crypto/rand"

	"github.com/vestachain/vesta/vesta"
)

func RandAddress() (addr vesta.Address) {
	rand.Read(addr[:])
	return
}
