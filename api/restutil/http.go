// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package restutil provides the plumbing shared by all REST handlers:
// error-returning handler funcs, the JSON error body and strict JSON codecs.
package restutil

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/vestachain/vesta/ledger"
)

// machine-readable error codes carried in the JSON error body
const (
	CodeValidation    = "validation"
	CodeAuthorization = "authorization"
	CodeState         = "state"
	CodeTransfer      = "transfer"
	CodeInternal      = "internal"
)

// ErrorBody is the JSON shape of every non-2xx response.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type httpError struct {
	cause  error
	code   string
	status int
}

func (e *httpError) Error() string {
	return e.cause.Error()
}

// HTTPError creates an error with an http status code.
func HTTPError(cause error, status int) error {
	return &httpError{
		cause:  cause,
		code:   CodeInternal,
		status: status,
	}
}

// BadRequest convenience method to create http bad request error.
func BadRequest(cause error) error {
	return &httpError{
		cause:  cause,
		code:   CodeValidation,
		status: http.StatusBadRequest,
	}
}

// Forbidden convenience method to create http forbidden error.
func Forbidden(cause error) error {
	return &httpError{
		cause:  cause,
		code:   CodeAuthorization,
		status: http.StatusForbidden,
	}
}

// LedgerError maps the ledger error taxonomy onto http statuses, keeping
// the category distinguishable through the code field. Anything outside
// the taxonomy is an infrastructure fault and surfaces as a 500.
func LedgerError(err error) error {
	switch {
	case ledger.IsValidationErr(err):
		return &httpError{cause: err, code: CodeValidation, status: http.StatusBadRequest}
	case ledger.IsAuthorizationErr(err):
		return &httpError{cause: err, code: CodeAuthorization, status: http.StatusForbidden}
	case ledger.IsStateErr(err):
		return &httpError{cause: err, code: CodeState, status: http.StatusConflict}
	case ledger.IsTransferErr(err):
		return &httpError{cause: err, code: CodeTransfer, status: http.StatusConflict}
	default:
		return err
	}
}

// HandlerFunc like http.HandlerFunc, but it returns an error.
// If the returned error is httpError type, httpError.status will be responded,
// otherwise http.StatusInternalServerError responded.
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// WrapHandlerFunc convert HandlerFunc to http.HandlerFunc.
func WrapHandlerFunc(f HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := f(w, r)
		if err != nil {
			if he, ok := err.(*httpError); ok {
				writeError(w, he.status, he.code, he.cause.Error())
			} else {
				writeError(w, http.StatusInternalServerError, CodeInternal, err.Error())
			}
		}
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", JSONContentType)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(&ErrorBody{
		Code:    code,
		Message: message,
	})
}

// content types
const (
	JSONContentType = "application/json; charset=utf-8"
)

// ParseJSON parse a JSON object using strict mode.
func ParseJSON(r io.Reader, v interface{}) error {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// WriteJSON response an object in JSON encoding.
func WriteJSON(w http.ResponseWriter, obj interface{}) error {
	w.Header().Set("Content-Type", JSONContentType)
	return json.NewEncoder(w).Encode(obj)
}

// M shortcut for type map[string]interface{}.
type M map[string]interface{}
