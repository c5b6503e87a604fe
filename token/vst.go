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

var tokenSupplyKey = vesta.Keccak256([]byte("token-supply"))

// VST implements the native staking token. Account balances live in the
// native balance rows of the state; only supply bookkeeping occupies the
// storage of the token address.
type VST struct {
	addr   vesta.Address
	state  *state.State
	supply *sslot.Uint256
}

// NewVST create an instance of VST bound to the given token address.
func NewVST(addr vesta.Address, st *state.State) *VST {
	return &VST{
		addr:   addr,
		state:  st,
		supply: sslot.NewUint256(sslot.NewContext(addr, st), tokenSupplyKey),
	}
}

// Address returns the token address.
func (v *VST) Address() vesta.Address {
	return v.addr
}

// BalanceOf returns the balance of the given account.
func (v *VST) BalanceOf(addr vesta.Address) (*big.Int, error) {
	return v.state.GetBalance(addr)
}

// TotalSupply returns the amount of tokens ever minted.
func (v *VST) TotalSupply() (*big.Int, error) {
	return v.supply.Get()
}

// Mint credits the given account, growing total supply accordingly.
func (v *VST) Mint(addr vesta.Address, amount *big.Int) error {
	bal, err := v.state.GetBalance(addr)
	if err != nil {
		return err
	}
	if err := v.state.SetBalance(addr, new(big.Int).Add(bal, amount)); err != nil {
		return err
	}
	return v.supply.Add(amount)
}

// Transfer moves amount from sender to recipient.
// The false return means the sender balance is too low.
func (v *VST) Transfer(sender, recipient vesta.Address, amount *big.Int) (bool, error) {
	return v.move(sender, recipient, amount)
}

// TransferFrom pulls amount from payer to recipient. Transfer authority is
// the caller's concern; the balance check is the only gate here.
func (v *VST) TransferFrom(payer, recipient vesta.Address, amount *big.Int) (bool, error) {
	return v.move(payer, recipient, amount)
}

func (v *VST) move(sender, recipient vesta.Address, amount *big.Int) (bool, error) {
	if amount.Sign() == 0 {
		return true, nil
	}
	senderBal, err := v.state.GetBalance(sender)
	if err != nil {
		return false, err
	}
	if senderBal.Cmp(amount) < 0 {
		return false, nil
	}
	if err := v.state.SetBalance(sender, new(big.Int).Sub(senderBal, amount)); err != nil {
		return false, err
	}
	recipientBal, err := v.state.GetBalance(recipient)
	if err != nil {
		return false, err
	}
	if err := v.state.SetBalance(recipient, new(big.Int).Add(recipientBal, amount)); err != nil {
		return false, err
	}
	return true, nil
}
