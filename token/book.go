// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"math/big"

	"github.com/vestachain/vesta/sslot"
	"github.com/vestachain/vesta/state"
	"github.com/vestachain/vesta/vesta"
)

var (
	slotBalances = vesta.BytesToBytes32([]byte("balances"))
	slotSupply   = vesta.BytesToBytes32([]byte("token-supply"))
)

// Book is the balance book of a non-native token. Balances are kept as a
// mapping in the storage of the token address, so any number of foreign
// tokens can coexist, each under its own address.
type Book struct {
	addr     vesta.Address
	balances *sslot.Mapping[vesta.Address, *big.Int]
	supply   *sslot.Uint256
}

// NewBook create a balance book bound to the given token address.
func NewBook(addr vesta.Address, st *state.State) *Book {
	ctx := sslot.NewContext(addr, st)
	return &Book{
		addr:     addr,
		balances: sslot.NewMapping[vesta.Address, *big.Int](ctx, slotBalances),
		supply:   sslot.NewUint256(ctx, slotSupply),
	}
}

// Address returns the token address.
func (b *Book) Address() vesta.Address {
	return b.addr
}

// BalanceOf returns the balance of the given account.
func (b *Book) BalanceOf(addr vesta.Address) (*big.Int, error) {
	bal, err := b.balances.Get(addr)
	if err != nil {
		return nil, err
	}
	if bal == nil {
		return new(big.Int), nil
	}
	return bal, nil
}

// TotalSupply returns the amount of tokens ever minted.
func (b *Book) TotalSupply() (*big.Int, error) {
	return b.supply.Get()
}

// Mint credits the given account, growing total supply accordingly.
func (b *Book) Mint(addr vesta.Address, amount *big.Int) error {
	bal, err := b.BalanceOf(addr)
	if err != nil {
		return err
	}
	if err := b.setBalance(addr, new(big.Int).Add(bal, amount)); err != nil {
		return err
	}
	return b.supply.Add(amount)
}

// Transfer moves amount from sender to recipient.
// The false return means the sender balance is too low.
func (b *Book) Transfer(sender, recipient vesta.Address, amount *big.Int) (bool, error) {
	return b.move(sender, recipient, amount)
}

// TransferFrom pulls amount from payer to recipient. Transfer authority is
// the caller's concern; the balance check is the only gate here.
func (b *Book) TransferFrom(payer, recipient vesta.Address, amount *big.Int) (bool, error) {
	return b.move(payer, recipient, amount)
}

func (b *Book) move(sender, recipient vesta.Address, amount *big.Int) (bool, error) {
	if amount.Sign() == 0 {
		return true, nil
	}
	senderBal, err := b.BalanceOf(sender)
	if err != nil {
		return false, err
	}
	if senderBal.Cmp(amount) < 0 {
		return false, nil
	}
	if err := b.setBalance(sender, new(big.Int).Sub(senderBal, amount)); err != nil {
		return false, err
	}
	recipientBal, err := b.BalanceOf(recipient)
	if err != nil {
		return false, err
	}
	if err := b.setBalance(recipient, new(big.Int).Add(recipientBal, amount)); err != nil {
		return false, err
	}
	return true, nil
}

// setBalance writes the balance row, clearing it when the balance drops
// to zero.
func (b *Book) setBalance(addr vesta.Address, bal *big.Int) error {
	if bal.Sign() == 0 {
		return b.balances.Set(addr, nil)
	}
	return b.balances.Set(addr, bal)
}
