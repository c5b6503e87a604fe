// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auth

import (
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vestachain/vesta/vesta"
)

func TestVerify(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	signer := vesta.PubkeyToAddress(&key.PublicKey)

	v := NewVerifier()
	body := `{"amount":"100"}`

	makeReq := func(nonce uint64, mutate func(sig string) string) (vesta.Address, error) {
		sig, err := Sign("POST", "/stakers/x/stake", nonce, []byte(body), key)
		require.NoError(t, err)
		if mutate != nil {
			sig = mutate(sig)
		}
		req := httptest.NewRequest("POST", "/stakers/x/stake", strings.NewReader(body))
		req.Header.Set(SignatureHeader, sig)
		req.Header.Set(NonceHeader, strconv.FormatUint(nonce, 10))
		return v.Verify(req, []byte(body))
	}

	recovered, err := makeReq(1, nil)
	require.NoError(t, err)
	assert.Equal(t, signer, recovered)

	// replayed nonce
	_, err = makeReq(1, nil)
	assert.EqualError(t, err, "nonce already used")

	// higher nonce passes again
	recovered, err = makeReq(2, nil)
	require.NoError(t, err)
	assert.Equal(t, signer, recovered)

	// a tampered signature either fails to recover or recovers a stranger
	recovered, err = makeReq(3, func(sig string) string {
		b := []byte(sig)
		if b[4] == 'a' {
			b[4] = 'b'
		} else {
			b[4] = 'a'
		}
		return string(b)
	})
	if err == nil {
		assert.NotEqual(t, signer, recovered)
	}
}

func TestVerifyRejectsMalformed(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	v := NewVerifier()
	body := []byte(`{}`)

	// no signature header
	req := httptest.NewRequest("POST", "/stakers/x/claim", nil)
	req.Header.Set(NonceHeader, "1")
	_, err = v.Verify(req, body)
	assert.EqualError(t, err, "missing signature header")

	// bad hex
	req = httptest.NewRequest("POST", "/stakers/x/claim", nil)
	req.Header.Set(SignatureHeader, "zzzz")
	req.Header.Set(NonceHeader, "1")
	_, err = v.Verify(req, body)
	assert.Error(t, err)

	// wrong length
	req = httptest.NewRequest("POST", "/stakers/x/claim", nil)
	req.Header.Set(SignatureHeader, "0x1234")
	req.Header.Set(NonceHeader, "1")
	_, err = v.Verify(req, body)
	assert.EqualError(t, err, "signature must be 65 bytes")

	// missing nonce
	sig, err := Sign("POST", "/stakers/x/claim", 1, body, key)
	require.NoError(t, err)
	req = httptest.NewRequest("POST", "/stakers/x/claim", nil)
	req.Header.Set(SignatureHeader, sig)
	_, err = v.Verify(req, body)
	assert.Error(t, err)
}

func TestDigestBindsRequest(t *testing.T) {
	d1 := SigningDigest("POST", "/stakers/x/stake", 1, []byte(`{"amount":"1"}`))
	assert.NotEqual(t, d1, SigningDigest("POST", "/stakers/x/unstake", 1, []byte(`{"amount":"1"}`)))
	assert.NotEqual(t, d1, SigningDigest("POST", "/stakers/x/stake", 2, []byte(`{"amount":"1"}`)))
	assert.NotEqual(t, d1, SigningDigest("POST", "/stakers/x/stake", 1, []byte(`{"amount":"2"}`)))
	assert.Equal(t, d1, SigningDigest("POST", "/stakers/x/stake", 1, []byte(`{"amount":"1"}`)))
}
