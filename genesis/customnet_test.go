// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis_test

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vestachain/vesta/genesis"
	"github.com/vestachain/vesta/ledger"
	"github.com/vestachain/vesta/lvldb"
	"github.com/vestachain/vesta/state"
	"github.com/vestachain/vesta/token"
	"github.com/vestachain/vesta/vesta"
)

const genesisYAML = `
name: vesta-test
launchTime: 1735689600
extraData: staking pilot
owner: "0x7567d83b7b8d80addcb281a71d54fc7b3364ffed"
accounts:
  - address: "0x7567d83b7b8d80addcb281a71d54fc7b3364ffed"
    balance: "1000000000000000000000"
  - address: "0x0123456789abcdef0123456789abcdef01234567"
    balance: "0x3635c9adc5dea00000"
`

func TestReadCustomGenesis(t *testing.T) {
	gen, err := genesis.ReadCustomGenesis(strings.NewReader(genesisYAML))
	require.NoError(t, err)

	assert.Equal(t, "vesta-test", gen.Name)
	assert.Equal(t, uint64(1735689600), gen.LaunchTime)
	assert.Len(t, gen.Accounts, 2)

	// unknown fields are refused
	_, err = genesis.ReadCustomGenesis(strings.NewReader("launchTime: 1\nbogus: true\n"))
	assert.Error(t, err)
}

func TestCustomNetGenesis(t *testing.T) {
	gen, err := genesis.ReadCustomGenesis(strings.NewReader(genesisYAML))
	require.NoError(t, err)

	gene, err := genesis.NewCustomNet(gen)
	require.NoError(t, err)
	assert.Equal(t, "vesta-test", gene.Name())
	assert.NotEqual(t, genesis.NewDevnet().ID(), gene.ID())

	kv, _ := lvldb.NewMem()
	defer kv.Close()
	stater := state.NewStater(kv)
	require.NoError(t, gene.Build(stater))

	st := stater.NewState()

	owner, err := ledger.ReadOwner(st, genesis.ContractAddress)
	require.NoError(t, err)
	assert.Equal(t, vesta.MustParseAddress("0x7567d83b7b8d80addcb281a71d54fc7b3364ffed"), owner)

	vst := token.NewVST(genesis.TokenAddress, st)
	bal, err := vst.BalanceOf(vesta.MustParseAddress("0x0123456789abcdef0123456789abcdef01234567"))
	require.NoError(t, err)

	// 0x3635c9adc5dea00000 is 1000 VST
	want := new(big.Int).Mul(big.NewInt(1000), vesta.DecimalsUnit)
	assert.Equal(t, want, bal)
}

func TestCustomNetGenesisInvalid(t *testing.T) {
	owner := genesis.DevAccounts()[0].Address.String()

	for _, tc := range []struct {
		name string
		gen  genesis.CustomGenesis
		want string
	}{
		{
			"missing launch time",
			genesis.CustomGenesis{Owner: owner},
			"launchTime",
		},
		{
			"missing owner",
			genesis.CustomGenesis{LaunchTime: 1735689600},
			"owner",
		},
		{
			"malformed balance",
			genesis.CustomGenesis{
				LaunchTime: 1735689600,
				Owner:      owner,
				Accounts:   []genesis.Account{{Address: owner, Balance: "not-a-number"}},
			},
			"malformed balance",
		},
		{
			"zero balance",
			genesis.CustomGenesis{
				LaunchTime: 1735689600,
				Owner:      owner,
				Accounts:   []genesis.Account{{Address: owner, Balance: "0"}},
			},
			"positive integer",
		},
		{
			"malformed account address",
			genesis.CustomGenesis{
				LaunchTime: 1735689600,
				Owner:      owner,
				Accounts:   []genesis.Account{{Address: "0xzz", Balance: "1"}},
			},
			"account",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := genesis.NewCustomNet(&tc.gen)
			assert.ErrorContains(t, err, tc.want)
		})
	}
}
