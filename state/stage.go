// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/vestachain/vesta/kv"
)

// Stage abstracts the process of committing journaled changes.
// All changes land in the underlying store in a single batch write.
type Stage struct {
	batch     kv.Batch
	committed bool
}

// Len returns the number of pending row writes.
func (s *Stage) Len() int {
	return s.batch.Len()
}

// Commit commits the batch. It is idempotent; committing twice is a no-op.
func (s *Stage) Commit() error {
	if s.committed {
		return nil
	}
	if err := s.batch.Write(); err != nil {
		return &Error{err}
	}
	s.committed = true
	return nil
}
