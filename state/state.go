// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vestachain/vesta/kv"
	"github.com/vestachain/vesta/stackedmap"
	"github.com/vestachain/vesta/vesta"
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

// State manages the world state: account rows plus per-address storage rows,
// journaled so that a whole group of mutations commits or reverts as one.
type State struct {
	store kv.GetPutter
	cache map[vesta.Address]*cachedObject // cache of base-layer accounts
	sm    *stackedmap.StackedMap          // keeps revisions of state
}

// New create state object over the given store.
func New(store kv.GetPutter) *State {
	state := State{
		store: store,
		cache: make(map[vesta.Address]*cachedObject),
	}

	state.sm = stackedmap.New(func(key interface{}) (interface{}, bool, error) {
		return state.cacheGetter(key)
	})
	return &state
}

// cacheGetter implements stackedmap.MapGetter.
func (s *State) cacheGetter(key interface{}) (value interface{}, exist bool, err error) {
	switch k := key.(type) {
	case vesta.Address: // get account
		obj, err := s.getCachedObject(k)
		if err != nil {
			return nil, false, err
		}
		return &obj.data, true, nil
	case storageKey: // get storage
		obj, err := s.getCachedObject(k.addr)
		if err != nil {
			return nil, false, err
		}
		v, err := obj.GetStorage(k.key)
		if err != nil {
			return nil, false, err
		}
		return v, true, nil
	}
	panic(fmt.Errorf("unexpected key type %+v", key))
}

func (s *State) getCachedObject(addr vesta.Address) (*cachedObject, error) {
	if co, ok := s.cache[addr]; ok {
		return co, nil
	}
	a, err := loadAccount(s.store, addr)
	if err != nil {
		return nil, err
	}
	co := newCachedObject(s.store, addr, a)
	s.cache[addr] = co
	return co, nil
}

// getAccount gets account by address. the returned account should not be modified.
func (s *State) getAccount(addr vesta.Address) (*Account, error) {
	v, _, err := s.sm.Get(addr)
	if err != nil {
		return nil, err
	}
	return v.(*Account), nil
}

// getAccountCopy get a copy of account by address.
func (s *State) getAccountCopy(addr vesta.Address) (Account, error) {
	acc, err := s.getAccount(addr)
	if err != nil {
		return Account{}, err
	}
	return *acc, nil
}

func (s *State) updateAccount(addr vesta.Address, acc *Account) {
	s.sm.Put(addr, acc)
}

// GetBalance returns balance for the given address.
func (s *State) GetBalance(addr vesta.Address) (*big.Int, error) {
	acc, err := s.getAccount(addr)
	if err != nil {
		return nil, &Error{err}
	}
	return acc.Balance, nil
}

// SetBalance set balance for the given address.
func (s *State) SetBalance(addr vesta.Address, balance *big.Int) error {
	cpy, err := s.getAccountCopy(addr)
	if err != nil {
		return &Error{err}
	}
	cpy.Balance = balance
	s.updateAccount(addr, &cpy)
	return nil
}

// GetStorage returns storage value for the given address and key.
func (s *State) GetStorage(addr vesta.Address, key vesta.Bytes32) (vesta.Bytes32, error) {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return vesta.Bytes32{}, &Error{err}
	}
	if len(raw) == 0 {
		return vesta.Bytes32{}, nil
	}
	kind, content, _, err := rlp.Split(raw)
	if err != nil {
		return vesta.Bytes32{}, &Error{err}
	}
	if kind == rlp.List {
		// special case for rlp list, it should be customized storage value
		// return hash of raw data
		return vesta.Blake2b(raw), nil
	}
	return vesta.BytesToBytes32(content), nil
}

// SetStorage set storage value for the given address and key.
func (s *State) SetStorage(addr vesta.Address, key, value vesta.Bytes32) {
	if value.IsZero() {
		s.SetRawStorage(addr, key, nil)
		return
	}
	v, _ := rlp.EncodeToBytes(bytes.TrimLeft(value[:], "\x00"))
	s.SetRawStorage(addr, key, v)
}

// GetRawStorage returns storage value in rlp raw for given address and key.
func (s *State) GetRawStorage(addr vesta.Address, key vesta.Bytes32) (rlp.RawValue, error) {
	data, _, err := s.sm.Get(storageKey{addr, key})
	if err != nil {
		return nil, &Error{err}
	}
	return data.(rlp.RawValue), nil
}

// SetRawStorage set storage value in rlp raw.
func (s *State) SetRawStorage(addr vesta.Address, key vesta.Bytes32, raw rlp.RawValue) {
	s.sm.Put(storageKey{addr, key}, raw)
}

// EncodeStorage set storage value encoded by given enc method.
// Error returned by enc will be absorbed by State instance.
func (s *State) EncodeStorage(addr vesta.Address, key vesta.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// DecodeStorage get and decode storage value.
// Error returned by dec will be absorbed by State instance.
func (s *State) DecodeStorage(addr vesta.Address, key vesta.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return &Error{err}
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// Exists returns whether an account exists at the given address.
// See Account.IsEmpty()
func (s *State) Exists(addr vesta.Address) (bool, error) {
	acc, err := s.getAccount(addr)
	if err != nil {
		return false, &Error{err}
	}
	return !acc.IsEmpty(), nil
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}

// Stage makes a stage object to commit all journaled changes in one batch.
func (s *State) Stage() (*Stage, error) {
	type changed struct {
		data    Account
		storage map[vesta.Bytes32]rlp.RawValue
	}

	changes := make(map[vesta.Address]*changed)

	// get or create changed account
	getChanged := func(addr vesta.Address) (*changed, error) {
		if obj, ok := changes[addr]; ok {
			return obj, nil
		}
		co, err := s.getCachedObject(addr)
		if err != nil {
			return nil, &Error{err}
		}

		c := &changed{data: co.data}
		changes[addr] = c
		return c, nil
	}

	var jerr error
	// traverse journal to build changes
	s.sm.Journal(func(k, v interface{}) bool {
		var c *changed
		switch key := k.(type) {
		case vesta.Address:
			if c, jerr = getChanged(key); jerr != nil {
				return false
			}
			c.data = *(v.(*Account))
		case storageKey:
			if c, jerr = getChanged(key.addr); jerr != nil {
				return false
			}
			if c.storage == nil {
				c.storage = make(map[vesta.Bytes32]rlp.RawValue)
			}
			c.storage[key.key] = v.(rlp.RawValue)
		}
		return true
	})
	if jerr != nil {
		return nil, &Error{jerr}
	}

	batch := s.store.NewBatch()
	for addr, c := range changes {
		if err := saveAccount(batch, addr, &c.data); err != nil {
			return nil, &Error{err}
		}
		// storage rows are not tied to account existence; a contract may
		// carry storage while holding zero balance.
		for k, v := range c.storage {
			if err := saveStorage(batch, addr, k, v); err != nil {
				return nil, &Error{err}
			}
		}
	}
	return &Stage{batch: batch}, nil
}

type storageKey struct {
	addr vesta.Address
	key  vesta.Bytes32
}
