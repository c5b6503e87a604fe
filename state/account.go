// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vestachain/vesta/kv"
	"github.com/vestachain/vesta/vesta"
)

// Account is the persisted representation of an account.
// RLP encoded objects are stored in the account rows of the main store.
type Account struct {
	Balance *big.Int
}

// IsEmpty returns if an account is empty.
// An empty account has zero balance.
func (a *Account) IsEmpty() bool {
	return a.Balance.Sign() == 0
}

func emptyAccount() *Account {
	return &Account{Balance: &big.Int{}}
}

// key prefixes of persisted rows.
const (
	accountPrefix = 'a'
	storagePrefix = 's'
)

func accountKey(addr vesta.Address) []byte {
	return append([]byte{accountPrefix}, addr[:]...)
}

func storageRowKey(addr vesta.Address, key vesta.Bytes32) []byte {
	k := make([]byte, 0, 1+vesta.AddressLength+32)
	k = append(k, storagePrefix)
	k = append(k, addr[:]...)
	return append(k, key[:]...)
}

// loadAccount load an account object by address.
// It returns empty account if no account found at the address.
func loadAccount(store kv.Getter, addr vesta.Address) (*Account, error) {
	data, err := store.Get(accountKey(addr))
	if err != nil {
		if store.IsNotFound(err) {
			return emptyAccount(), nil
		}
		return nil, err
	}
	var a Account
	if err := rlp.DecodeBytes(data, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// saveAccount save account at the given address.
// If the given account is empty, the row for the address is deleted.
func saveAccount(putter kv.Putter, addr vesta.Address, a *Account) error {
	if a.IsEmpty() {
		// delete if account is empty
		return putter.Delete(accountKey(addr))
	}

	data, err := rlp.EncodeToBytes(a)
	if err != nil {
		return err
	}
	return putter.Put(accountKey(addr), data)
}

// loadStorage load storage value for given address and key.
func loadStorage(store kv.Getter, addr vesta.Address, key vesta.Bytes32) (rlp.RawValue, error) {
	v, err := store.Get(storageRowKey(addr, key))
	if err != nil {
		if store.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return v, nil
}

// saveStorage save value for given address and key.
// If the data is zero-length, the row is deleted.
func saveStorage(putter kv.Putter, addr vesta.Address, key vesta.Bytes32, data rlp.RawValue) error {
	if len(data) == 0 {
		return putter.Delete(storageRowKey(addr, key))
	}
	return putter.Put(storageRowKey(addr, key), data)
}
