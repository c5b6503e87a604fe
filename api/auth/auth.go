// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package auth authenticates mutating API requests. A caller signs the
// request digest with its secp256k1 key and the handler recovers the
// signer address from the signature, so the API carries no credentials
// beyond what the ledger already understands.
package auth

import (
	"crypto/ecdsa"
	"net/http"
	"strconv"
	"sync"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"

	"github.com/vestachain/vesta/vesta"
)

// request headers carrying the proof
const (
	SignatureHeader = "x-vesta-signature"
	NonceHeader     = "x-vesta-nonce"
)

// nonceCacheSize bounds how many signer addresses are tracked for replay.
const nonceCacheSize = 8192

// SigningDigest builds the digest a caller must sign: the request method,
// path, nonce and body, newline separated, hashed with keccak256.
func SigningDigest(method, path string, nonce uint64, body []byte) vesta.Bytes32 {
	return vesta.Keccak256(
		[]byte(method),
		[]byte("\n"),
		[]byte(path),
		[]byte("\n"),
		[]byte(strconv.FormatUint(nonce, 10)),
		[]byte("\n"),
		body,
	)
}

// Sign produces the signature header value for a request: the 65-byte
// recoverable signature of the signing digest, hex encoded.
func Sign(method, path string, nonce uint64, body []byte, key *ecdsa.PrivateKey) (string, error) {
	digest := SigningDigest(method, path, nonce, body)
	sig, err := crypto.Sign(digest.Bytes(), key)
	if err != nil {
		return "", err
	}
	return hexutil.Encode(sig), nil
}

// Verifier recovers and replay-checks request signatures. Nonces must
// strictly increase per signer; the last accepted nonce is kept in a
// bounded lru cache.
type Verifier struct {
	mu     sync.Mutex
	nonces *lru.Cache
}

func NewVerifier() *Verifier {
	cache, err := lru.New(nonceCacheSize)
	if err != nil {
		// lru.New only fails on a non-positive size
		panic(errors.Wrap(err, "failed to create nonce cache"))
	}
	return &Verifier{nonces: cache}
}

// Verify checks the signature and nonce headers of req against the given
// body and returns the recovered signer address. The body is passed in
// explicitly because handlers have usually consumed req.Body already.
func (v *Verifier) Verify(req *http.Request, body []byte) (vesta.Address, error) {
	sigHex := req.Header.Get(SignatureHeader)
	if sigHex == "" {
		return vesta.Address{}, errors.New("missing signature header")
	}
	sig, err := hexutil.Decode(sigHex)
	if err != nil {
		return vesta.Address{}, errors.WithMessage(err, "signature")
	}
	if len(sig) != 65 {
		return vesta.Address{}, errors.New("signature must be 65 bytes")
	}

	nonce, err := strconv.ParseUint(req.Header.Get(NonceHeader), 10, 64)
	if err != nil {
		return vesta.Address{}, errors.WithMessage(err, "nonce")
	}

	digest := SigningDigest(req.Method, req.URL.Path, nonce, body)
	pub, err := crypto.SigToPub(digest.Bytes(), sig)
	if err != nil {
		return vesta.Address{}, errors.WithMessage(err, "invalid signature")
	}
	signer := vesta.PubkeyToAddress(pub)

	v.mu.Lock()
	defer v.mu.Unlock()
	if last, ok := v.nonces.Get(signer); ok && nonce <= last.(uint64) {
		return vesta.Address{}, errors.New("nonce already used")
	}
	v.nonces.Add(signer, nonce)
	return signer, nil
}
