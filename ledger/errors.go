// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"errors"
)

// ValidationError rejects input that fails the ledger's checks, before
// anything is mutated.
type ValidationError struct {
	message string
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		message: message,
	}
}

func (e *ValidationError) Error() string {
	return e.message
}

func IsValidationErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ValidationError
	return errors.As(e, &ve)
}

// AuthorizationError rejects a privileged operation from a caller that is
// not the owner.
type AuthorizationError struct {
	message string
}

func NewAuthorizationError(message string) *AuthorizationError {
	return &AuthorizationError{
		message: message,
	}
}

func (e *AuthorizationError) Error() string {
	return e.message
}

func IsAuthorizationErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ae *AuthorizationError
	return errors.As(e, &ae)
}

// StateError rejects an operation the ledger or the account is in the wrong
// state for: paused, not staking, or already inside a mutating call.
type StateError struct {
	message string
}

func NewStateError(message string) *StateError {
	return &StateError{
		message: message,
	}
}

func (e *StateError) Error() string {
	return e.message
}

func IsStateErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var se *StateError
	return errors.As(e, &se)
}

// TransferError reports a token move the token refused. The enclosing
// operation is rolled back whole.
type TransferError struct {
	message string
}

func NewTransferError(message string) *TransferError {
	return &TransferError{
		message: message,
	}
}

func (e *TransferError) Error() string {
	return e.message
}

func IsTransferErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var te *TransferError
	return errors.As(e, &te)
}
