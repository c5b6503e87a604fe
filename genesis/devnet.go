// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"crypto/ecdsa"
	"math/big"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/vestachain/vesta/ledger"
	"github.com/vestachain/vesta/state"
	"github.com/vestachain/vesta/token"
	"github.com/vestachain/vesta/vesta"
)

// DevAccount account for development.
type DevAccount struct {
	Address    vesta.Address
	PrivateKey *ecdsa.PrivateKey
}

var devAccounts atomic.Value

// DevAccounts returns pre-alloced accounts for solo mode.
func DevAccounts() []DevAccount {
	if accs := devAccounts.Load(); accs != nil {
		return accs.([]DevAccount)
	}

	var accs []DevAccount
	privKeys := []string{
		"f512d4263e3c06026814c3ce93fa6693bed792c8708acf822f390dcbf114e6f9",
		"2df67dc2d3b96e55af33ec3310b32751773239c85fe5652700b284c4c955cc65",
		"144a6b3a05901739183e82db9b52d9e30c25354c726cfe7f7da699f65d427211",
		"249f6eefc363bf9269029dc5922c67a9b2e9c16d413b480765610c9e265e114f",
		"7bd6f3704880f8f15f7358f1f6338cbd8206cb65f997976b9da42ad4036a675b",
		"bf73e97f6e534c669b68aa8d21302307a13abc47d1f95dbf23a609a03f5f543e",
		"0f6a3175f79129ed9a0db6bc56465a51fdbf0c0bcc8ba3b3a79d410c5e17de65",
		"ef3f41410df7e4d38992865a32571574a5d70c3c288287f529a49121638a26dc",
		"e09f09819376bce43025e371e5cb54ad94530631e9b8eb796c0b7a322bc23552",
		"699ec07891da6b1e3cba84ec3b8e2bcbc2ae8733fceae8c9145dde1b874f5a6d",
	}
	for _, str := range privKeys {
		pk, err := crypto.HexToECDSA(str)
		if err != nil {
			panic(err)
		}
		accs = append(accs, DevAccount{vesta.PubkeyToAddress(&pk.PublicKey), pk})
	}
	devAccounts.Store(accs)
	return accs
}

// NewDevnet create genesis for solo mode. The first dev account owns the
// ledger; every dev account is funded with one million VST.
func NewDevnet() *Genesis {
	launchTime := uint64(1735689600) // 'Wed Jan 01 2025 00:00:00 GMT+0000'

	owner := DevAccounts()[0].Address

	builder := new(Builder).
		Timestamp(launchTime).
		State(func(st *state.State) error {
			ledger.Initialize(st, ContractAddress, owner)

			vst := token.NewVST(TokenAddress, st)
			for _, a := range DevAccounts() {
				bal := new(big.Int).Mul(big.NewInt(1_000_000), vesta.DecimalsUnit)
				if err := vst.Mint(a.Address, bal); err != nil {
					return err
				}
			}
			return nil
		})

	id, err := builder.ComputeID()
	if err != nil {
		panic(err)
	}

	return &Genesis{builder, id, "devnet"}
}
