// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vestachain/vesta/kv"
	"github.com/vestachain/vesta/vesta"
)

// cachedObject holds the base-layer view of an account, to minimize store access.
type cachedObject struct {
	store kv.Getter
	addr  vesta.Address
	data  Account

	cache struct {
		storage map[vesta.Bytes32]rlp.RawValue
	}
}

func newCachedObject(store kv.Getter, addr vesta.Address, data *Account) *cachedObject {
	return &cachedObject{store: store, addr: addr, data: *data}
}

// GetStorage returns storage value for given key.
func (co *cachedObject) GetStorage(key vesta.Bytes32) (rlp.RawValue, error) {
	cache := &co.cache
	// retrieve from cache
	if v, ok := cache.storage[key]; ok {
		return v, nil
	}

	v, err := loadStorage(co.store, co.addr, key)
	if err != nil {
		return nil, err
	}
	// put into cache
	if cache.storage == nil {
		cache.storage = make(map[vesta.Bytes32]rlp.RawValue)
	}
	cache.storage[key] = v
	return v, nil
}
