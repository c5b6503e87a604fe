// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vestachain/vesta/lvldb"
	"github.com/vestachain/vesta/state"
	"github.com/vestachain/vesta/vesta"
)

func TestBook(t *testing.T) {
	kv, _ := lvldb.NewMem()
	st := state.New(kv)

	acc1 := vesta.BytesToAddress([]byte("a1"))
	acc2 := vesta.BytesToAddress([]byte("a2"))

	book := NewBook(vesta.BytesToAddress([]byte("foreign")), st)

	tests := []struct {
		ret      interface{}
		expected interface{}
	}{
		{M(book.BalanceOf(acc1)), M(&big.Int{}, nil)},
		{book.Mint(acc1, big.NewInt(100)), nil},
		{M(book.BalanceOf(acc1)), M(big.NewInt(100), nil)},
		{M(book.TotalSupply()), M(big.NewInt(100), nil)},
		{M(book.Transfer(acc1, acc2, big.NewInt(40))), M(true, nil)},
		{M(book.BalanceOf(acc1)), M(big.NewInt(60), nil)},
		{M(book.BalanceOf(acc2)), M(big.NewInt(40), nil)},
		{M(book.Transfer(acc1, acc2, big.NewInt(61))), M(false, nil)},
		{M(book.TransferFrom(acc2, acc1, big.NewInt(40))), M(true, nil)},
		{M(book.BalanceOf(acc1)), M(big.NewInt(100), nil)},
		{M(book.BalanceOf(acc2)), M(&big.Int{}, nil)},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.ret)
	}
}

func TestBooksAreIndependent(t *testing.T) {
	kv, _ := lvldb.NewMem()
	st := state.New(kv)

	acc := vesta.BytesToAddress([]byte("a1"))

	book1 := NewBook(vesta.BytesToAddress([]byte("t1")), st)
	book2 := NewBook(vesta.BytesToAddress([]byte("t2")), st)

	assert.Nil(t, book1.Mint(acc, big.NewInt(5)))

	bal, err := book2.BalanceOf(acc)
	assert.Nil(t, err)
	assert.Equal(t, &big.Int{}, bal)
}
