// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vestachain/vesta/ledger"
	"github.com/vestachain/vesta/lvldb"
	"github.com/vestachain/vesta/state"
	"github.com/vestachain/vesta/test/datagen"
	"github.com/vestachain/vesta/token"
	"github.com/vestachain/vesta/vesta"
)

const startTime uint64 = 1_700_000_000

var (
	contractAddr = vesta.BytesToAddress([]byte("staking-ledger"))
	tokenAddr    = vesta.BytesToAddress([]byte("vst"))
	owner        = vesta.BytesToAddress([]byte("owner"))
)

func units(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), vesta.DecimalsUnit)
}

func vstMaker(st *state.State) ledger.Token {
	return token.NewVST(tokenAddr, st)
}

func bookMaker(addr vesta.Address, st *state.State) ledger.Token {
	return token.NewBook(addr, st)
}

type env struct {
	t      *testing.T
	led    *ledger.Ledger
	clock  *ledger.ManualClock
	stater *state.Stater
}

// newEnv bootstraps a ledger over an in-memory store: the owner is set, each
// account gets funded and the contract holds a token reserve to pay rewards
// out of.
func newEnv(t *testing.T, accounts ...vesta.Address) *env {
	kv, _ := lvldb.NewMem()
	stater := state.NewStater(kv)

	st := stater.NewState()
	ledger.Initialize(st, contractAddr, owner)
	vst := token.NewVST(tokenAddr, st)
	for _, acc := range accounts {
		require.NoError(t, vst.Mint(acc, units(1_000_000)))
	}
	require.NoError(t, vst.Mint(contractAddr, units(10_000)))
	stage, err := st.Stage()
	require.NoError(t, err)
	require.NoError(t, stage.Commit())

	clock := ledger.NewManualClock(startTime)
	return &env{
		t:      t,
		led:    ledger.New(contractAddr, stater, clock, vstMaker, bookMaker),
		clock:  clock,
		stater: stater,
	}
}

func (e *env) balance(addr vesta.Address) *big.Int {
	bal, err := vstMaker(e.stater.NewState()).BalanceOf(addr)
	require.NoError(e.t, err)
	return bal
}

func (e *env) info(addr vesta.Address) *ledger.StakingInfo {
	info, err := e.led.GetStakingInfo(addr)
	require.NoError(e.t, err)
	return info
}

func (e *env) stats() *ledger.Stats {
	stats, err := e.led.GetContractStats()
	require.NoError(e.t, err)
	return stats
}

func TestStakeAndAccrual(t *testing.T) {
	acc := vesta.BytesToAddress([]byte("alice"))
	e := newEnv(t, acc)

	require.NoError(t, e.led.Stake(acc, units(1000)))

	info := e.info(acc)
	assert.True(t, info.Active)
	assert.Equal(t, units(1000), info.StakedAmount)
	assert.Equal(t, startTime, info.StakingStartTime)
	assert.Equal(t, 0, info.PendingRewards.Sign())

	// a year at the 10% annual rate pays a tenth of the principal
	e.clock.Advance(vesta.SecondsPerYear)
	assert.Equal(t, units(100), e.info(acc).PendingRewards)

	// the projection is read only, asking twice changes nothing
	assert.Equal(t, units(100), e.info(acc).PendingRewards)

	stats := e.stats()
	assert.Equal(t, units(1000), stats.TotalStaked)
	assert.Equal(t, 0, stats.TotalRewardsDistributed.Sign())
	assert.Equal(t, units(11_000), stats.TokenBalance)
}

func TestStakeBelowMinimum(t *testing.T) {
	acc := vesta.BytesToAddress([]byte("alice"))
	e := newEnv(t, acc)

	err := e.led.Stake(acc, units(50))
	assert.True(t, ledger.IsValidationErr(err))

	assert.Equal(t, 0, e.stats().TotalStaked.Sign())
	assert.Equal(t, units(1_000_000), e.balance(acc))
	assert.False(t, e.info(acc).Active)
}

func TestStakeTransferRefused(t *testing.T) {
	funded := vesta.BytesToAddress([]byte("alice"))
	broke := vesta.BytesToAddress([]byte("mallory"))
	e := newEnv(t, funded)

	err := e.led.Stake(broke, units(100))
	assert.True(t, ledger.IsTransferErr(err))

	assert.Equal(t, 0, e.stats().TotalStaked.Sign())
	assert.False(t, e.info(broke).Active)
}

func TestStakeTopUp(t *testing.T) {
	acc := vesta.BytesToAddress([]byte("alice"))
	e := newEnv(t, acc)

	require.NoError(t, e.led.Stake(acc, units(1000)))
	e.clock.Advance(vesta.SecondsPerYear)

	// the year behind is priced against the old principal
	require.NoError(t, e.led.Stake(acc, units(1000)))

	info := e.info(acc)
	assert.Equal(t, units(2000), info.StakedAmount)
	assert.Equal(t, units(100), info.PendingRewards)
	// topping up does not reset the staking start
	assert.Equal(t, startTime, info.StakingStartTime)

	e.clock.Advance(vesta.SecondsPerYear)
	assert.Equal(t, units(300), e.info(acc).PendingRewards)
}

func TestUnstakeEarlyPenalty(t *testing.T) {
	acc := vesta.BytesToAddress([]byte("alice"))
	e := newEnv(t, acc)

	require.NoError(t, e.led.Stake(acc, units(1000)))
	balBefore := e.balance(acc)
	contractBefore := e.balance(contractAddr)

	// one day in, the lock is still on: 5% of the amount stays behind
	e.clock.Advance(vesta.SecondsPerDay)
	require.NoError(t, e.led.Unstake(acc, units(500)))

	assert.Equal(t, units(475), new(big.Int).Sub(e.balance(acc), balBefore))
	assert.Equal(t, units(475), new(big.Int).Sub(contractBefore, e.balance(contractAddr)))

	info := e.info(acc)
	assert.True(t, info.Active)
	assert.Equal(t, units(500), info.StakedAmount)
	assert.Equal(t, units(500), e.stats().TotalStaked)
}

func TestUnstakeAfterLockPeriod(t *testing.T) {
	acc := vesta.BytesToAddress([]byte("alice"))
	e := newEnv(t, acc)

	require.NoError(t, e.led.Stake(acc, units(1000)))
	balBefore := e.balance(acc)

	e.clock.Advance(vesta.MinLockPeriod + 1)
	require.NoError(t, e.led.Unstake(acc, units(500)))

	// past the lock period the payout is whole
	assert.Equal(t, units(500), new(big.Int).Sub(e.balance(acc), balBefore))
	assert.Equal(t, units(500), e.info(acc).StakedAmount)
}

func TestUnstakeValidation(t *testing.T) {
	acc := vesta.BytesToAddress([]byte("alice"))
	e := newEnv(t, acc)

	// nothing staked yet
	assert.True(t, ledger.IsStateErr(e.led.Unstake(acc, units(10))))

	require.NoError(t, e.led.Stake(acc, units(1000)))

	assert.True(t, ledger.IsValidationErr(e.led.Unstake(acc, units(2000))))
	assert.True(t, ledger.IsValidationErr(e.led.Unstake(acc, &big.Int{})))

	assert.Equal(t, units(1000), e.info(acc).StakedAmount)
	assert.Equal(t, units(1000), e.stats().TotalStaked)
}

func TestFullExitParksRewards(t *testing.T) {
	acc := vesta.BytesToAddress([]byte("alice"))
	e := newEnv(t, acc)

	require.NoError(t, e.led.Stake(acc, units(1000)))
	e.clock.Advance(vesta.SecondsPerYear)
	require.NoError(t, e.led.Unstake(acc, units(1000)))

	info := e.info(acc)
	assert.False(t, info.Active)
	assert.Equal(t, 0, info.StakedAmount.Sign())
	// rewards survive the exit but cannot be claimed while inactive
	assert.Equal(t, units(100), info.PendingRewards)
	_, err := e.led.ClaimRewards(acc)
	assert.True(t, ledger.IsStateErr(err))

	// staking again revives the claim without paying for the gap
	e.clock.Advance(vesta.SecondsPerDay)
	require.NoError(t, e.led.Stake(acc, units(500)))
	balBefore := e.balance(acc)
	claimed, err := e.led.ClaimRewards(acc)
	require.NoError(t, err)

	assert.Equal(t, units(100), claimed)
	assert.Equal(t, units(100), new(big.Int).Sub(e.balance(acc), balBefore))
	assert.Equal(t, units(100), e.stats().TotalRewardsDistributed)
}

func TestClaimRewards(t *testing.T) {
	acc := vesta.BytesToAddress([]byte("alice"))
	e := newEnv(t, acc)

	require.NoError(t, e.led.Stake(acc, units(1000)))
	e.clock.Advance(vesta.SecondsPerYear)

	balBefore := e.balance(acc)
	claimed, err := e.led.ClaimRewards(acc)
	require.NoError(t, err)

	assert.Equal(t, units(100), claimed)
	assert.Equal(t, units(100), new(big.Int).Sub(e.balance(acc), balBefore))
	assert.Equal(t, 0, e.info(acc).PendingRewards.Sign())
	assert.Equal(t, units(100), e.stats().TotalRewardsDistributed)
	// the principal is untouched by a claim
	assert.Equal(t, units(1000), e.info(acc).StakedAmount)

	// claiming again right away finds nothing
	_, err = e.led.ClaimRewards(acc)
	assert.True(t, ledger.IsValidationErr(err))
	assert.EqualError(t, err, "nothing to claim")
}

func TestClaimRequiresActiveStake(t *testing.T) {
	acc := vesta.BytesToAddress([]byte("alice"))
	e := newEnv(t, acc)

	_, err := e.led.ClaimRewards(acc)
	assert.True(t, ledger.IsStateErr(err))
}

func TestProjectionMatchesClaim(t *testing.T) {
	acc := vesta.BytesToAddress([]byte("alice"))
	e := newEnv(t, acc)

	require.NoError(t, e.led.Stake(acc, units(1234)))
	e.clock.Advance(12_345)

	// whatever the projection shows is exactly what a claim pays
	projected := e.info(acc).PendingRewards
	assert.Equal(t, 1, projected.Sign())

	balBefore := e.balance(acc)
	claimed, err := e.led.ClaimRewards(acc)
	require.NoError(t, err)

	assert.Equal(t, projected, claimed)
	assert.Equal(t, projected, new(big.Int).Sub(e.balance(acc), balBefore))
	assert.Equal(t, projected, e.stats().TotalRewardsDistributed)
	assert.Equal(t, 0, e.info(acc).PendingRewards.Sign())
}

func TestPendingRewardsMonotonic(t *testing.T) {
	acc := vesta.BytesToAddress([]byte("alice"))
	e := newEnv(t, acc)

	require.NoError(t, e.led.Stake(acc, units(1000)))

	last := new(big.Int)
	for range 10 {
		e.clock.Advance(3600)
		pending := e.info(acc).PendingRewards
		assert.True(t, pending.Cmp(last) >= 0)
		last = pending
	}
}

func TestPauseGating(t *testing.T) {
	acc := vesta.BytesToAddress([]byte("alice"))
	e := newEnv(t, acc)

	require.NoError(t, e.led.Stake(acc, units(1000)))
	e.clock.Advance(vesta.SecondsPerDay)

	// only the owner throws the switch
	assert.True(t, ledger.IsAuthorizationErr(e.led.Pause(acc)))

	require.NoError(t, e.led.Pause(owner))
	paused, err := e.led.Paused()
	require.NoError(t, err)
	assert.True(t, paused)

	assert.True(t, ledger.IsStateErr(e.led.Stake(acc, units(100))))
	assert.True(t, ledger.IsStateErr(e.led.Unstake(acc, units(100))))
	_, err = e.led.ClaimRewards(acc)
	assert.True(t, ledger.IsStateErr(err))

	// reads stay open while paused
	assert.Equal(t, units(1000), e.info(acc).StakedAmount)
	assert.Equal(t, units(1000), e.stats().TotalStaked)

	assert.True(t, ledger.IsAuthorizationErr(e.led.Unpause(acc)))
	require.NoError(t, e.led.Unpause(owner))
	require.NoError(t, e.led.Stake(acc, units(100)))

	got, err := e.led.Owner()
	require.NoError(t, err)
	assert.Equal(t, owner, got)
}

func TestEmergencyRecover(t *testing.T) {
	acc := vesta.BytesToAddress([]byte("alice"))
	e := newEnv(t, acc)

	// a foreign token ended up in the contract by accident
	foreign := vesta.BytesToAddress([]byte("usdv"))
	st := e.stater.NewState()
	require.NoError(t, token.NewBook(foreign, st).Mint(contractAddr, big.NewInt(5000)))
	stage, err := st.Stage()
	require.NoError(t, err)
	require.NoError(t, stage.Commit())

	assert.True(t, ledger.IsAuthorizationErr(e.led.EmergencyRecover(acc, foreign, big.NewInt(5000))))
	// the staking token is off limits no matter the amount
	assert.True(t, ledger.IsValidationErr(e.led.EmergencyRecover(owner, tokenAddr, big.NewInt(1))))

	require.NoError(t, e.led.EmergencyRecover(owner, foreign, big.NewInt(3000)))
	ownerBal, err := token.NewBook(foreign, e.stater.NewState()).BalanceOf(owner)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(3000), ownerBal)

	// recovering more than the holding is refused by the token
	assert.True(t, ledger.IsTransferErr(e.led.EmergencyRecover(owner, foreign, big.NewInt(50_000))))
}

// refusingToken lets deposits through and refuses every payout.
type refusingToken struct {
	ledger.Token
}

func (r *refusingToken) Transfer(_, _ vesta.Address, _ *big.Int) (bool, error) {
	return false, nil
}

func TestTransferFailureRollsBack(t *testing.T) {
	acc := vesta.BytesToAddress([]byte("alice"))
	e := newEnv(t, acc)

	require.NoError(t, e.led.Stake(acc, units(1000)))
	e.clock.Advance(vesta.SecondsPerYear)

	hostile := ledger.New(contractAddr, e.stater, e.clock, func(st *state.State) ledger.Token {
		return &refusingToken{token.NewVST(tokenAddr, st)}
	}, bookMaker)

	balBefore := e.balance(acc)

	assert.True(t, ledger.IsTransferErr(hostile.Unstake(acc, units(500))))

	// nothing moved and nothing shrank, not even the accrual point
	assert.Equal(t, balBefore, e.balance(acc))
	info := e.info(acc)
	assert.Equal(t, units(1000), info.StakedAmount)
	assert.Equal(t, units(100), info.PendingRewards)
	assert.Equal(t, units(1000), e.stats().TotalStaked)

	_, err := hostile.ClaimRewards(acc)
	assert.True(t, ledger.IsTransferErr(err))
	assert.Equal(t, units(100), e.info(acc).PendingRewards)
	assert.Equal(t, 0, e.stats().TotalRewardsDistributed.Sign())
}

// reentrantToken calls back into the ledger from inside the transfer pull.
type reentrantToken struct {
	ledger.Token
	reenter func() error
	caught  *error
}

func (r *reentrantToken) TransferFrom(_, _ vesta.Address, _ *big.Int) (bool, error) {
	*r.caught = r.reenter()
	return false, nil
}

func TestReentrancyGuard(t *testing.T) {
	acc := vesta.BytesToAddress([]byte("alice"))
	e := newEnv(t, acc)

	var caught error
	var hostile *ledger.Ledger
	hostile = ledger.New(contractAddr, e.stater, e.clock, func(st *state.State) ledger.Token {
		return &reentrantToken{
			Token:   token.NewVST(tokenAddr, st),
			reenter: func() error {
				_, err := hostile.ClaimRewards(acc)
				return err
			},
			caught:  &caught,
		}
	}, bookMaker)

	err := hostile.Stake(acc, units(1000))
	assert.True(t, ledger.IsTransferErr(err))

	// the nested call failed instead of deadlocking or interleaving
	assert.True(t, ledger.IsStateErr(caught))
	assert.EqualError(t, caught, "reentrant call")

	assert.Equal(t, 0, e.stats().TotalStaked.Sign())
	assert.False(t, e.info(acc).Active)
}

func TestTotalStakedTracksSum(t *testing.T) {
	acc1 := datagen.RandAddress()
	acc2 := datagen.RandAddress()
	e := newEnv(t, acc1, acc2)

	check := func(expected *big.Int) {
		stats := e.stats()
		assert.Equal(t, 0, stats.TotalStaked.Cmp(expected))

		sum := new(big.Int)
		for _, acc := range []vesta.Address{acc1, acc2} {
			sum.Add(sum, e.info(acc).StakedAmount)
		}
		assert.Equal(t, 0, stats.TotalStaked.Cmp(sum))
	}

	require.NoError(t, e.led.Stake(acc1, units(1000)))
	check(units(1000))

	require.NoError(t, e.led.Stake(acc2, units(300)))
	check(units(1300))

	e.clock.Advance(vesta.MinLockPeriod + 1)
	require.NoError(t, e.led.Unstake(acc1, units(400)))
	check(units(900))

	require.NoError(t, e.led.Stake(acc1, units(100)))
	check(units(1000))

	require.NoError(t, e.led.Unstake(acc1, units(700)))
	check(units(300))

	require.NoError(t, e.led.Unstake(acc2, units(300)))
	check(new(big.Int))
}

func TestEvents(t *testing.T) {
	acc := vesta.BytesToAddress([]byte("alice"))
	e := newEnv(t, acc)

	ch := make(chan *ledger.Event, 10)
	sub := e.led.SubscribeEvents(ch)
	defer sub.Unsubscribe()

	require.NoError(t, e.led.Stake(acc, units(1000)))
	e.clock.Advance(vesta.SecondsPerDay)
	require.NoError(t, e.led.Unstake(acc, units(500)))
	e.clock.Advance(vesta.SecondsPerYear)
	_, err := e.led.ClaimRewards(acc)
	require.NoError(t, err)

	staked := <-ch
	assert.Equal(t, ledger.NameStaked, staked.Name)
	assert.Equal(t, acc, staked.Account)
	assert.Equal(t, units(1000), staked.Amount)
	assert.Equal(t, 0, staked.Penalty.Sign())
	assert.Equal(t, startTime, staked.Timestamp)

	unstaked := <-ch
	assert.Equal(t, ledger.NameUnstaked, unstaked.Name)
	assert.Equal(t, units(500), unstaked.Amount)
	assert.Equal(t, units(25), unstaked.Penalty)
	assert.Equal(t, startTime+vesta.SecondsPerDay, unstaked.Timestamp)

	claimed := <-ch
	assert.Equal(t, ledger.NameRewardsClaimed, claimed.Name)
	assert.Equal(t, acc, claimed.Account)
	assert.Equal(t, 1, claimed.Amount.Sign())

	e.led.Close()
}

func TestDefaultClock(t *testing.T) {
	acc := vesta.BytesToAddress([]byte("alice"))
	e := newEnv(t, acc)

	led := ledger.New(contractAddr, e.stater, nil, vstMaker, bookMaker)
	require.NoError(t, led.Stake(acc, units(100)))

	info, err := led.GetStakingInfo(acc)
	require.NoError(t, err)
	assert.True(t, info.Active)
	assert.GreaterOrEqual(t, info.StakingStartTime, startTime)
}
