// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"

	"github.com/vestachain/vesta/kv"
	"github.com/vestachain/vesta/lvldb"
	"github.com/vestachain/vesta/state"
	"github.com/vestachain/vesta/vesta"
)

// Builder helper to build the genesis state.
type Builder struct {
	launchTime uint64
	extraData  [28]byte

	stateProcs []func(st *state.State) error
}

// Timestamp set the launch time.
func (b *Builder) Timestamp(t uint64) *Builder {
	b.launchTime = t
	return b
}

// ExtraData set extra data, which salts the genesis ID.
func (b *Builder) ExtraData(data [28]byte) *Builder {
	b.extraData = data
	return b
}

// State add a state process.
func (b *Builder) State(proc func(st *state.State) error) *Builder {
	b.stateProcs = append(b.stateProcs, proc)
	return b
}

// Build runs the state processes on a fresh state and commits the result.
func (b *Builder) Build(stater *state.Stater) error {
	st := stater.NewState()
	for _, proc := range b.stateProcs {
		if err := proc(st); err != nil {
			return errors.Wrap(err, "state process")
		}
	}
	stage, err := st.Stage()
	if err != nil {
		return errors.Wrap(err, "stage")
	}
	return errors.Wrap(stage.Commit(), "commit state")
}

// ComputeID builds the preset into a throwaway in-memory store and hashes
// the committed rows in key order, together with the launch time and extra
// data. Two presets get the same ID iff they produce the same state.
func (b *Builder) ComputeID() (vesta.Bytes32, error) {
	store, err := lvldb.NewMem()
	if err != nil {
		return vesta.Bytes32{}, err
	}
	defer store.Close()

	if err := b.Build(state.NewStater(store)); err != nil {
		return vesta.Bytes32{}, err
	}

	var iterErr error
	id := vesta.Blake2bFn(func(w io.Writer) {
		var buf [8]byte
		binary.BigEndian.PutUint64(buf[:], b.launchTime)
		w.Write(buf[:])
		w.Write(b.extraData[:])

		it := store.NewIterator(kv.Range{})
		defer it.Release()
		for it.Next() {
			w.Write(it.Key())
			w.Write(it.Value())
		}
		iterErr = it.Error()
	})
	if iterErr != nil {
		return vesta.Bytes32{}, iterErr
	}
	return id, nil
}
