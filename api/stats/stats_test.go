// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stats_test

import (
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vestachain/vesta/api/stats"
	"github.com/vestachain/vesta/ledger"
	"github.com/vestachain/vesta/lvldb"
	"github.com/vestachain/vesta/state"
	"github.com/vestachain/vesta/token"
	"github.com/vestachain/vesta/vesta"
)

var (
	contractAddr = vesta.BytesToAddress([]byte("staking-ledger"))
	tokenAddr    = vesta.BytesToAddress([]byte("vst"))
	owner        = vesta.BytesToAddress([]byte("owner"))
	acc          = vesta.BytesToAddress([]byte("alice"))
)

func units(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), vesta.DecimalsUnit)
}

func newServer(t *testing.T) (*httptest.Server, *ledger.Ledger) {
	kv, _ := lvldb.NewMem()
	stater := state.NewStater(kv)

	st := stater.NewState()
	ledger.Initialize(st, contractAddr, owner)
	vst := token.NewVST(tokenAddr, st)
	require.NoError(t, vst.Mint(acc, units(1_000_000)))
	require.NoError(t, vst.Mint(contractAddr, units(10_000)))
	stage, err := st.Stage()
	require.NoError(t, err)
	require.NoError(t, stage.Commit())

	led := ledger.New(contractAddr, stater, ledger.NewManualClock(1_700_000_000), func(st *state.State) ledger.Token {
		return token.NewVST(tokenAddr, st)
	}, func(addr vesta.Address, st *state.State) ledger.Token {
		return token.NewBook(addr, st)
	})
	t.Cleanup(led.Close)

	router := mux.NewRouter()
	stats.New(led).Mount(router, "/ledger/stats")
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts, led
}

func getStats(t *testing.T, ts *httptest.Server) *stats.ContractStats {
	res, err := http.Get(ts.URL + "/ledger/stats")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	var cs stats.ContractStats
	require.NoError(t, json.Unmarshal(body, &cs))
	return &cs
}

func TestGetStats(t *testing.T) {
	ts, led := newServer(t)

	cs := getStats(t, ts)
	assert.Equal(t, 0, (*big.Int)(cs.TotalStaked).Sign())
	assert.Equal(t, 0, (*big.Int)(cs.TokenBalance).Cmp(units(10_000)))

	require.NoError(t, led.Stake(acc, units(1000)))

	cs = getStats(t, ts)
	assert.Equal(t, 0, (*big.Int)(cs.TotalStaked).Cmp(units(1000)))
	assert.Equal(t, 0, (*big.Int)(cs.TotalRewardsDistributed).Sign())
	assert.Equal(t, 0, (*big.Int)(cs.TokenBalance).Cmp(units(11_000)))
}

func TestGetStatsConcurrent(t *testing.T) {
	ts, led := newServer(t)
	require.NoError(t, led.Stake(acc, units(1000)))

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cs := getStats(t, ts)
			assert.Equal(t, 0, (*big.Int)(cs.TotalStaked).Cmp(units(1000)))
		}()
	}
	wg.Wait()
}
