// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestErrors(t *testing.T) {
	validation := NewValidationError("below minimum")
	assert.Equal(t, "below minimum", validation.Error())

	assert.True(t, IsValidationErr(validation))
	assert.False(t, IsValidationErr(nil))
	assert.False(t, IsValidationErr(fmt.Errorf("below minimum")))
	assert.False(t, IsValidationErr(big.NewInt(0)))

	assert.True(t, IsAuthorizationErr(NewAuthorizationError("not the owner")))
	assert.True(t, IsStateErr(NewStateError("paused")))
	assert.True(t, IsTransferErr(NewTransferError("refused")))

	// the categories never bleed into each other
	assert.False(t, IsAuthorizationErr(validation))
	assert.False(t, IsStateErr(validation))
	assert.False(t, IsTransferErr(validation))
	assert.False(t, IsValidationErr(NewStateError("paused")))
}

func TestErrorsWrapped(t *testing.T) {
	wrapped := errors.Wrap(NewTransferError("refused"), "unstake")
	assert.True(t, IsTransferErr(wrapped))
	assert.False(t, IsValidationErr(wrapped))
}
