// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package client provides the Go client for the staking ledger API. It
// wraps the http and websocket transports behind one facade; mutating
// calls additionally need a Signer holding the account key.
package client

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/vestachain/vesta/api/accounts"
	"github.com/vestachain/vesta/api/auth"
	"github.com/vestachain/vesta/api/events"
	"github.com/vestachain/vesta/api/stakers"
	"github.com/vestachain/vesta/api/stats"
	"github.com/vestachain/vesta/api/subscriptions"
	"github.com/vestachain/vesta/client/common"
	"github.com/vestachain/vesta/client/httpclient"
	"github.com/vestachain/vesta/client/wsclient"
	"github.com/vestachain/vesta/eventdb"
	"github.com/vestachain/vesta/vesta"
)

// ErrNoSigner is returned by mutating calls on a client without a signer.
var ErrNoSigner = errors.New("no signer configured")

// Client is the facade over the http and websocket API clients.
type Client struct {
	httpConn *httpclient.Client
	wsConn   *wsclient.Client
	signer   *Signer
}

// New creates a read-only http client for the given URL.
func New(url string) *Client {
	return &Client{
		httpConn: httpclient.New(url),
	}
}

// NewWithWS creates a client that can also open event subscriptions.
func NewWithWS(url string) (*Client, error) {
	wsClient, err := wsclient.NewClient(url)
	if err != nil {
		return nil, err
	}

	return &Client{
		httpConn: httpclient.New(url),
		wsConn:   wsClient,
	}, nil
}

// WithSigner equips the client with the key used to sign mutating calls
// and returns the client for chaining.
func (c *Client) WithSigner(key *ecdsa.PrivateKey) *Client {
	c.signer = NewSigner(key)
	return c
}

func (c *Client) RawHTTPClient() *httpclient.Client {
	return c.httpConn
}

func (c *Client) RawWSClient() *wsclient.Client {
	return c.wsConn
}

// Signer returns the signer of the client, nil for read-only clients.
func (c *Client) Signer() *Signer {
	return c.signer
}

// Staker retrieves the staking position of the given account.
func (c *Client) Staker(addr vesta.Address) (*stakers.StakingInfo, error) {
	return c.httpConn.GetStaker(addr)
}

// Stats retrieves the ledger-wide statistics.
func (c *Client) Stats() (*stats.ContractStats, error) {
	return c.httpConn.GetStats()
}

// Account retrieves the staking token balance of the given address.
func (c *Client) Account(addr vesta.Address) (*accounts.Account, error) {
	return c.httpConn.GetAccount(addr)
}

// FilterEvents queries the event history with the given filter.
func (c *Client) FilterEvents(filter *eventdb.Filter) ([]*events.FilteredEvent, error) {
	return c.httpConn.FilterEvents(filter)
}

// Stake stakes the given amount for the signer account.
func (c *Client) Stake(amount *big.Int) (*stakers.StakingInfo, error) {
	if c.signer == nil {
		return nil, ErrNoSigner
	}
	return c.httpConn.PostStake(c.signer.Address(), amount, c.signer)
}

// Unstake withdraws the given amount of the signer's stake.
func (c *Client) Unstake(amount *big.Int) (*stakers.StakingInfo, error) {
	if c.signer == nil {
		return nil, ErrNoSigner
	}
	return c.httpConn.PostUnstake(c.signer.Address(), amount, c.signer)
}

// ClaimRewards claims the signer's accrued rewards.
func (c *Client) ClaimRewards() (*stakers.ClaimResult, error) {
	if c.signer == nil {
		return nil, ErrNoSigner
	}
	return c.httpConn.PostClaim(c.signer.Address(), c.signer)
}

// SubscribeEvents opens a subscription to the ledger event stream. query
// carries the raw url query, e.g. "pos=0&name=Staked".
func (c *Client) SubscribeEvents(query string) (<-chan common.EventWrapper[*subscriptions.EventMessage], error) {
	if c.wsConn == nil {
		return nil, fmt.Errorf("not a websocket typed client")
	}
	return c.wsConn.SubscribeEvents(query)
}

// Signer signs mutating API requests with a secp256k1 key. Nonces are
// strictly increasing: seeded from the wall clock and bumped once per
// request, so a fresh signer for the same key starts above anything an
// earlier run submitted.
type Signer struct {
	key   *ecdsa.PrivateKey
	addr  vesta.Address
	nonce atomic.Uint64
}

func NewSigner(key *ecdsa.PrivateKey) *Signer {
	s := &Signer{
		key:  key,
		addr: vesta.PubkeyToAddress(&key.PublicKey),
	}
	s.nonce.Store(uint64(time.Now().UnixNano()))
	return s
}

// Address returns the account address derived from the signing key.
func (s *Signer) Address() vesta.Address {
	return s.addr
}

// SignRequest implements httpclient.Auth: it attaches the nonce and
// signature headers covering the request method, path and body.
func (s *Signer) SignRequest(req *http.Request, body []byte) error {
	nonce := s.nonce.Add(1)
	sig, err := auth.Sign(req.Method, req.URL.Path, nonce, body, s.key)
	if err != nil {
		return err
	}
	req.Header.Set(auth.NonceHeader, strconv.FormatUint(nonce, 10))
	req.Header.Set(auth.SignatureHeader, sig)
	return nil
}
