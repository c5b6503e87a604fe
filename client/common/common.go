// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package common holds the error values and wrapper types shared by the
// http and websocket halves of the client.
package common

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrNot200Status  = errors.New("not 200 status code")
	ErrUnexpectedMsg = errors.New("unexpected message format")
)

// EventWrapper carries a subscription message alongside the error that
// ended the stream, so a single channel can deliver both.
type EventWrapper[T any] struct {
	Data  T
	Error error
}
