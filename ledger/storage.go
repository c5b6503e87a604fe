// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vestachain/vesta/sslot"
	"github.com/vestachain/vesta/state"
	"github.com/vestachain/vesta/vesta"
)

var (
	slotStakers      = nameToSlot("stakers")
	slotTotalStaked  = nameToSlot("total-staked")
	slotTotalRewards = nameToSlot("total-rewards-distributed")
	slotPaused       = nameToSlot("paused")
	slotOwner        = nameToSlot("owner")
)

func nameToSlot(name string) vesta.Bytes32 {
	return vesta.BytesToBytes32([]byte(name))
}

// storage is the root storage layout of the ledger contract.
type storage struct {
	context      *sslot.Context
	stakers      *sslot.Mapping[vesta.Address, *StakerRecord]
	totalStaked  *sslot.Uint256
	totalRewards *sslot.Uint256
	paused       *sslot.Bool
	owner        *sslot.Address
}

// newStorage creates a storage view bound to the contract address over the
// given state instance.
func newStorage(addr vesta.Address, st *state.State) *storage {
	context := sslot.NewContext(addr, st)
	return &storage{
		context:      context,
		stakers:      sslot.NewMapping[vesta.Address, *StakerRecord](context, slotStakers),
		totalStaked:  sslot.NewUint256(context, slotTotalStaked),
		totalRewards: sslot.NewUint256(context, slotTotalRewards),
		paused:       sslot.NewBool(context, slotPaused),
		owner:        sslot.NewAddress(context, slotOwner),
	}
}

// GetStaker loads the record of the given account. Accounts that never
// staked yield a zero-valued record.
func (s *storage) GetStaker(addr vesta.Address) (*StakerRecord, error) {
	r, err := s.stakers.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get staker")
	}
	if r == nil {
		return &StakerRecord{
			StakedAmount:       &big.Int{},
			AccumulatedRewards: &big.Int{},
		}, nil
	}
	return r, nil
}

func (s *storage) SetStaker(addr vesta.Address, r *StakerRecord) error {
	if err := s.stakers.Set(addr, r); err != nil {
		return errors.Wrap(err, "failed to set staker")
	}
	return nil
}

func (s *storage) TotalStaked() (*big.Int, error) {
	v, err := s.totalStaked.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get total staked")
	}
	return v, nil
}

func (s *storage) AddTotalStaked(amount *big.Int) error {
	if err := s.totalStaked.Add(amount); err != nil {
		return errors.Wrap(err, "failed to add total staked")
	}
	return nil
}

func (s *storage) SubTotalStaked(amount *big.Int) error {
	if err := s.totalStaked.Sub(amount); err != nil {
		return errors.Wrap(err, "failed to sub total staked")
	}
	return nil
}

func (s *storage) TotalRewards() (*big.Int, error) {
	v, err := s.totalRewards.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get total rewards")
	}
	return v, nil
}

func (s *storage) AddTotalRewards(amount *big.Int) error {
	if err := s.totalRewards.Add(amount); err != nil {
		return errors.Wrap(err, "failed to add total rewards")
	}
	return nil
}

func (s *storage) Paused() (bool, error) {
	v, err := s.paused.Get()
	if err != nil {
		return false, errors.Wrap(err, "failed to get paused flag")
	}
	return v, nil
}

func (s *storage) SetPaused(paused bool) {
	s.paused.Set(paused)
}

func (s *storage) Owner() (vesta.Address, error) {
	v, err := s.owner.Get()
	if err != nil {
		return vesta.Address{}, errors.Wrap(err, "failed to get owner")
	}
	return v, nil
}

func (s *storage) SetOwner(addr vesta.Address) {
	s.owner.Set(&addr)
}
