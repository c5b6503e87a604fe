// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vestachain/vesta/ledger"
	"github.com/vestachain/vesta/state"
	"github.com/vestachain/vesta/token"
	"github.com/vestachain/vesta/vesta"
)

// CustomGenesis is a user supplied genesis preset.
type CustomGenesis struct {
	Name       string    `yaml:"name"`
	LaunchTime uint64    `yaml:"launchTime"`
	ExtraData  string    `yaml:"extraData"`
	Owner      string    `yaml:"owner"`
	Accounts   []Account `yaml:"accounts"`
}

// Account is an account prefunded at genesis. Balance accepts decimal or
// 0x-prefixed hex.
type Account struct {
	Address string `yaml:"address"`
	Balance string `yaml:"balance"`
}

// ReadCustomGenesis decodes a yaml genesis preset. Unknown fields are
// rejected, a misspelled field should not silently zero a balance.
func ReadCustomGenesis(r io.Reader) (*CustomGenesis, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var gen CustomGenesis
	if err := decoder.Decode(&gen); err != nil {
		return nil, errors.Wrap(err, "decode genesis file")
	}
	return &gen, nil
}

// NewCustomNet create genesis for a custom deployment.
func NewCustomNet(gen *CustomGenesis) (*Genesis, error) {
	if gen.LaunchTime == 0 {
		return nil, errors.New("launchTime must be set")
	}
	owner, err := vesta.ParseAddress(gen.Owner)
	if err != nil {
		return nil, errors.Wrap(err, "owner")
	}

	type funded struct {
		addr vesta.Address
		bal  *big.Int
	}
	accounts := make([]funded, 0, len(gen.Accounts))
	for _, a := range gen.Accounts {
		addr, err := vesta.ParseAddress(a.Address)
		if err != nil {
			return nil, errors.Wrapf(err, "account %q", a.Address)
		}
		bal, ok := math.ParseBig256(a.Balance)
		if !ok {
			return nil, errors.Errorf("%s: malformed balance %q", a.Address, a.Balance)
		}
		if bal.Sign() < 1 {
			return nil, errors.Errorf("%s: balance must be a positive integer", a.Address)
		}
		accounts = append(accounts, funded{addr, bal})
	}

	builder := new(Builder).
		Timestamp(gen.LaunchTime).
		State(func(st *state.State) error {
			ledger.Initialize(st, ContractAddress, owner)

			vst := token.NewVST(TokenAddress, st)
			for _, a := range accounts {
				if err := vst.Mint(a.addr, a.bal); err != nil {
					return err
				}
			}
			return nil
		})

	if len(gen.ExtraData) > 0 {
		var extra [28]byte
		copy(extra[:], gen.ExtraData)
		builder.ExtraData(extra)
	}

	id, err := builder.ComputeID()
	if err != nil {
		return nil, err
	}

	name := gen.Name
	if name == "" {
		name = "customnet"
	}
	return &Genesis{builder, id, name}, nil
}
