// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package restutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vestachain/vesta/ledger"
)

func TestWrapHandlerFunc(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"no error", nil, http.StatusOK, ""},
		{"bad request", BadRequest(errors.New("bad amount")), http.StatusBadRequest, CodeValidation},
		{"forbidden", Forbidden(errors.New("no")), http.StatusForbidden, CodeAuthorization},
		{"custom status", HTTPError(errors.New("busy"), http.StatusServiceUnavailable), http.StatusServiceUnavailable, CodeInternal},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, CodeInternal},
		{"ledger validation", LedgerError(ledger.NewValidationError("too small")), http.StatusBadRequest, CodeValidation},
		{"ledger authorization", LedgerError(ledger.NewAuthorizationError("not owner")), http.StatusForbidden, CodeAuthorization},
		{"ledger state", LedgerError(ledger.NewStateError("paused")), http.StatusConflict, CodeState},
		{"ledger transfer", LedgerError(ledger.NewTransferError("refused")), http.StatusConflict, CodeTransfer},
		{"ledger infra", LedgerError(errors.New("db broken")), http.StatusInternalServerError, CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h := WrapHandlerFunc(func(http.ResponseWriter, *http.Request) error {
				if tt.err != nil {
					return tt.err
				}
				return WriteJSON(rec, M{"ok": true})
			})
			h(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				var body ErrorBody
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tt.wantCode, body.Code)
			}
		})
	}
}

func TestParseJSONStrict(t *testing.T) {
	var v struct {
		Amount string `json:"amount"`
	}
	assert.NoError(t, ParseJSON(strings.NewReader(`{"amount":"10"}`), &v))
	assert.Equal(t, "10", v.Amount)

	assert.Error(t, ParseJSON(strings.NewReader(`{"amount":"10","extra":1}`), &v))
}
