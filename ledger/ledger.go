// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package ledger implements the staking ledger contract: per-account staking
// records, time-proportional reward accrual and the global aggregates, all
// kept consistent without ever walking the staker set.
package ledger

import (
	"math/big"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/event"
	"github.com/pkg/errors"

	"github.com/vestachain/vesta/log"
	"github.com/vestachain/vesta/state"
	"github.com/vestachain/vesta/vesta"
)

var logger = log.WithContext("pkg", "ledger")

// Token is the capability the ledger needs from a token: move funds and
// report balances. The bool result of a move reports refusal by the token,
// the error reports state access failure.
type Token interface {
	Address() vesta.Address
	BalanceOf(addr vesta.Address) (*big.Int, error)
	Transfer(sender, recipient vesta.Address, amount *big.Int) (bool, error)
	TransferFrom(payer, recipient vesta.Address, amount *big.Int) (bool, error)
}

// TokenMaker binds the staking token to a state instance.
type TokenMaker func(st *state.State) Token

// BookMaker binds the balance book of an arbitrary token address to a state
// instance. Only the recovery path reaches for foreign tokens.
type BookMaker func(addr vesta.Address, st *state.State) Token

// StakingInfo is the per-account view of the ledger. PendingRewards is a
// projection: rewards already materialized plus the accrual for time elapsed
// since, priced with the same formula the mutating path uses.
type StakingInfo struct {
	StakedAmount     *big.Int
	PendingRewards   *big.Int
	StakingStartTime uint64
	Active           bool
}

// Stats is the global aggregate view of the ledger.
type Stats struct {
	TotalStaked             *big.Int
	TotalRewardsDistributed *big.Int
	TokenBalance            *big.Int
}

// Ledger owns the staking records of one contract address. Every mutating
// operation runs on a fresh state instance and commits in a single batch, so
// a failed operation leaves no trace.
type Ledger struct {
	addr         vesta.Address
	stater       *state.Stater
	clock        Clock
	stakingToken TokenMaker
	books        BookMaker

	lock    sync.RWMutex
	entered atomic.Bool

	feed  event.Feed
	scope event.SubscriptionScope
}

// New creates a ledger over the given state store. A nil clock falls back to
// the system clock.
func New(addr vesta.Address, stater *state.Stater, clock Clock, stakingToken TokenMaker, books BookMaker) *Ledger {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Ledger{
		addr:         addr,
		stater:       stater,
		clock:        clock,
		stakingToken: stakingToken,
		books:        books,
	}
}

// Initialize writes the deployment-time state of the ledger contract: the
// owning identity. Meant to be called once, from genesis.
func Initialize(st *state.State, addr, owner vesta.Address) {
	newStorage(addr, st).SetOwner(owner)
}

// ReadOwner reports the owning identity recorded at the contract address.
func ReadOwner(st *state.State, addr vesta.Address) (vesta.Address, error) {
	return newStorage(addr, st).Owner()
}

// Address returns the contract address of the ledger.
func (l *Ledger) Address() vesta.Address {
	return l.addr
}

// SubscribeEvents registers a channel to receive the events of committed
// operations.
func (l *Ledger) SubscribeEvents(ch chan *Event) event.Subscription {
	return l.scope.Track(l.feed.Subscribe(ch))
}

// Close unsubscribes all event subscribers.
func (l *Ledger) Close() {
	l.scope.Close()
}

// enter takes the mutating-operation gate. The flag is checked before the
// lock so that a reentrant call out of a token callback fails instead of
// deadlocking on its own goroutine; a concurrent mutator fails the same way
// and is expected to resubmit.
func (l *Ledger) enter() error {
	if !l.entered.CompareAndSwap(false, true) {
		return NewStateError("reentrant call")
	}
	l.lock.Lock()
	return nil
}

func (l *Ledger) leave() {
	l.lock.Unlock()
	l.entered.Store(false)
}

func (l *Ledger) commit(st *state.State) error {
	stage, err := st.Stage()
	if err != nil {
		return errors.Wrap(err, "failed to stage changes")
	}
	if err := stage.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit changes")
	}
	return nil
}

func (l *Ledger) checkNotPaused(store *storage) error {
	paused, err := store.Paused()
	if err != nil {
		return err
	}
	if paused {
		return NewStateError("ledger is paused")
	}
	return nil
}

func (l *Ledger) checkOwner(store *storage, caller vesta.Address) error {
	owner, err := store.Owner()
	if err != nil {
		return err
	}
	if caller != owner {
		return NewAuthorizationError("caller is not the owner")
	}
	return nil
}

// Stake locks amount of the staking token for account. The principal is
// pulled from the account first; a refused pull rejects the call before any
// record is touched.
func (l *Ledger) Stake(account vesta.Address, amount *big.Int) (err error) {
	start := time.Now()
	defer func() { opDone("stake", start, err) }()

	if err := l.enter(); err != nil {
		return err
	}
	defer l.leave()

	now := l.clock.Now()
	st := l.stater.NewState()
	store := newStorage(l.addr, st)

	if err := l.checkNotPaused(store); err != nil {
		return err
	}
	if amount == nil || amount.Cmp(vesta.MinStakeAmount) < 0 {
		return NewValidationError("amount below minimum stake")
	}

	ok, err := l.stakingToken(st).TransferFrom(account, l.addr, amount)
	if err != nil {
		return err
	}
	if !ok {
		return NewTransferError("stake transfer refused")
	}

	record, err := store.GetStaker(account)
	if err != nil {
		return err
	}
	if record.Active {
		record.Accrue(now)
		record.StakedAmount.Add(record.StakedAmount, amount)
	} else {
		// reactivation keeps any parked rewards but never pays for the
		// inactive span, so the accrual point resets along with the start.
		record.StakedAmount = new(big.Int).Set(amount)
		record.StakingStartTime = now
		record.LastRewardCalc = now
		record.Active = true
	}
	if err := store.SetStaker(account, record); err != nil {
		return err
	}
	if err := store.AddTotalStaked(amount); err != nil {
		return err
	}
	if err := l.commit(st); err != nil {
		return err
	}

	l.feed.Send(&Event{
		Name:      NameStaked,
		Account:   account,
		Amount:    new(big.Int).Set(amount),
		Penalty:   new(big.Int),
		Timestamp: now,
	})
	logger.Info("staked", "account", account, "amount", amount)
	l.updateStakedGauge(store)
	return nil
}

// Unstake withdraws amount of principal for account. Rewards accrue before
// the principal shrinks; withdrawing before the lock period has elapsed
// forfeits a cut of the amount, which stays in the contract balance.
func (l *Ledger) Unstake(account vesta.Address, amount *big.Int) (err error) {
	start := time.Now()
	defer func() { opDone("unstake", start, err) }()

	if err := l.enter(); err != nil {
		return err
	}
	defer l.leave()

	now := l.clock.Now()
	st := l.stater.NewState()
	store := newStorage(l.addr, st)

	if err := l.checkNotPaused(store); err != nil {
		return err
	}

	record, err := store.GetStaker(account)
	if err != nil {
		return err
	}
	if !record.Active {
		return NewStateError("account is not staking")
	}
	if amount == nil || amount.Sign() <= 0 {
		return NewValidationError("amount must be positive")
	}
	if amount.Cmp(record.StakedAmount) > 0 {
		return NewValidationError("amount exceeds staked balance")
	}

	record.Accrue(now)
	penalty := record.EarlyPenalty(amount, now)
	payout := new(big.Int).Sub(amount, penalty)

	record.StakedAmount.Sub(record.StakedAmount, amount)
	if record.StakedAmount.Sign() == 0 {
		// a full exit parks any accumulated rewards: claiming needs an
		// active stake, so they sit in the record until the account
		// stakes again.
		record.Active = false
	}
	if err := store.SetStaker(account, record); err != nil {
		return err
	}
	if err := store.SubTotalStaked(amount); err != nil {
		return err
	}

	ok, err := l.stakingToken(st).Transfer(l.addr, account, payout)
	if err != nil {
		return err
	}
	if !ok {
		return NewTransferError("unstake transfer refused")
	}
	if err := l.commit(st); err != nil {
		return err
	}

	l.feed.Send(&Event{
		Name:      NameUnstaked,
		Account:   account,
		Amount:    new(big.Int).Set(amount),
		Penalty:   penalty,
		Timestamp: now,
	})
	logger.Info("unstaked", "account", account, "amount", amount, "penalty", penalty)
	l.updateStakedGauge(store)
	return nil
}

// ClaimRewards pays out all rewards accrued by account up to now and
// returns the amount paid.
func (l *Ledger) ClaimRewards(account vesta.Address) (claimed *big.Int, err error) {
	start := time.Now()
	defer func() { opDone("claim", start, err) }()

	if err := l.enter(); err != nil {
		return nil, err
	}
	defer l.leave()

	now := l.clock.Now()
	st := l.stater.NewState()
	store := newStorage(l.addr, st)

	if err := l.checkNotPaused(store); err != nil {
		return nil, err
	}

	record, err := store.GetStaker(account)
	if err != nil {
		return nil, err
	}
	if !record.Active {
		return nil, NewStateError("account is not staking")
	}

	record.Accrue(now)
	if record.AccumulatedRewards.Sign() == 0 {
		return nil, NewValidationError("nothing to claim")
	}
	rewards := record.AccumulatedRewards
	record.AccumulatedRewards = new(big.Int)

	if err := store.SetStaker(account, record); err != nil {
		return nil, err
	}
	if err := store.AddTotalRewards(rewards); err != nil {
		return nil, err
	}

	ok, err := l.stakingToken(st).Transfer(l.addr, account, rewards)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, NewTransferError("claim transfer refused")
	}
	if err := l.commit(st); err != nil {
		return nil, err
	}

	l.feed.Send(&Event{
		Name:      NameRewardsClaimed,
		Account:   account,
		Amount:    rewards,
		Penalty:   new(big.Int),
		Timestamp: now,
	})
	logger.Info("rewards claimed", "account", account, "rewards", rewards)
	l.updateRewardsGauge(store)
	return rewards, nil
}

// Pause closes the gate checked by stake, unstake and claim. Owner only.
// Reads and admin operations stay available.
func (l *Ledger) Pause(caller vesta.Address) (err error) {
	start := time.Now()
	defer func() { opDone("pause", start, err) }()

	if err := l.enter(); err != nil {
		return err
	}
	defer l.leave()

	st := l.stater.NewState()
	store := newStorage(l.addr, st)

	if err := l.checkOwner(store, caller); err != nil {
		return err
	}
	store.SetPaused(true)
	if err := l.commit(st); err != nil {
		return err
	}

	logger.Info("paused", "owner", caller)
	metricPaused().Set(1)
	return nil
}

// Unpause reopens the gate. Owner only.
func (l *Ledger) Unpause(caller vesta.Address) (err error) {
	start := time.Now()
	defer func() { opDone("unpause", start, err) }()

	if err := l.enter(); err != nil {
		return err
	}
	defer l.leave()

	st := l.stater.NewState()
	store := newStorage(l.addr, st)

	if err := l.checkOwner(store, caller); err != nil {
		return err
	}
	store.SetPaused(false)
	if err := l.commit(st); err != nil {
		return err
	}

	logger.Info("unpaused", "owner", caller)
	metricPaused().Set(0)
	return nil
}

// EmergencyRecover moves amount of a foreign token out of the contract to
// the owner. The staking token is off limits, recovery must never be able
// to drain principal or rewards.
func (l *Ledger) EmergencyRecover(caller, token vesta.Address, amount *big.Int) (err error) {
	start := time.Now()
	defer func() { opDone("recover", start, err) }()

	if err := l.enter(); err != nil {
		return err
	}
	defer l.leave()

	st := l.stater.NewState()
	store := newStorage(l.addr, st)

	if err := l.checkOwner(store, caller); err != nil {
		return err
	}
	if token == l.stakingToken(st).Address() {
		return NewValidationError("cannot recover the staking token")
	}
	if amount == nil || amount.Sign() <= 0 {
		return NewValidationError("amount must be positive")
	}

	ok, err := l.books(token, st).Transfer(l.addr, caller, amount)
	if err != nil {
		return err
	}
	if !ok {
		return NewTransferError("recovery transfer refused")
	}
	if err := l.commit(st); err != nil {
		return err
	}

	logger.Info("recovered", "owner", caller, "token", token, "amount", amount)
	return nil
}

// GetStakingInfo returns the staking view of account at the current time.
// Read only; the pending projection equals what a claim at the same instant
// would materialize.
func (l *Ledger) GetStakingInfo(account vesta.Address) (*StakingInfo, error) {
	l.lock.RLock()
	defer l.lock.RUnlock()

	now := l.clock.Now()
	store := newStorage(l.addr, l.stater.NewState())

	record, err := store.GetStaker(account)
	if err != nil {
		return nil, err
	}
	return &StakingInfo{
		StakedAmount:     record.StakedAmount,
		PendingRewards:   new(big.Int).Add(record.AccumulatedRewards, record.CalcRewards(now)),
		StakingStartTime: record.StakingStartTime,
		Active:           record.Active,
	}, nil
}

// GetContractStats returns the global aggregates and the token balance held
// by the contract.
func (l *Ledger) GetContractStats() (*Stats, error) {
	l.lock.RLock()
	defer l.lock.RUnlock()

	st := l.stater.NewState()
	store := newStorage(l.addr, st)

	totalStaked, err := store.TotalStaked()
	if err != nil {
		return nil, err
	}
	totalRewards, err := store.TotalRewards()
	if err != nil {
		return nil, err
	}
	balance, err := l.stakingToken(st).BalanceOf(l.addr)
	if err != nil {
		return nil, err
	}
	return &Stats{
		TotalStaked:             totalStaked,
		TotalRewardsDistributed: totalRewards,
		TokenBalance:            balance,
	}, nil
}

// Paused reports whether the mutating gate is closed.
func (l *Ledger) Paused() (bool, error) {
	l.lock.RLock()
	defer l.lock.RUnlock()

	return newStorage(l.addr, l.stater.NewState()).Paused()
}

// Owner returns the privileged identity of the ledger.
func (l *Ledger) Owner() (vesta.Address, error) {
	l.lock.RLock()
	defer l.lock.RUnlock()

	return newStorage(l.addr, l.stater.NewState()).Owner()
}
