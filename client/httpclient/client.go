// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package httpclient provides the HTTP client for the staking ledger API.
// It offers typed methods to retrieve staking positions, ledger statistics,
// token balances and event history, and to submit signed staking operations.
package httpclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strings"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vestachain/vesta/api/accounts"
	"github.com/vestachain/vesta/api/events"
	"github.com/vestachain/vesta/api/restutil"
	"github.com/vestachain/vesta/api/stakers"
	"github.com/vestachain/vesta/api/stats"
	"github.com/vestachain/vesta/client/common"
	"github.com/vestachain/vesta/eventdb"
	"github.com/vestachain/vesta/vesta"
)

// Auth signs an outgoing request. The body is passed in explicitly
// because the signature covers the exact bytes put on the wire.
type Auth interface {
	SignRequest(req *http.Request, body []byte) error
}

// Client is the HTTP client for the staking ledger API.
type Client struct {
	url string
	c   *http.Client
}

// New creates a new Client with the provided URL.
func New(url string) *Client {
	return NewWithHTTP(url, http.DefaultClient)
}

func NewWithHTTP(url string, c *http.Client) *Client {
	return &Client{
		url: strings.TrimSuffix(url, "/"),
		c:   c,
	}
}

// GetStaker retrieves the staking position of the given account.
// Accounts that never staked get a zero position, not an error.
func (c *Client) GetStaker(addr vesta.Address) (*stakers.StakingInfo, error) {
	body, err := c.httpGET(c.url + "/stakers/" + addr.String())
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve staker - %w", err)
	}

	var info stakers.StakingInfo
	if err = json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("unable to unmarshal staker - %w", err)
	}

	return &info, nil
}

// GetStats retrieves the ledger-wide statistics.
func (c *Client) GetStats() (*stats.ContractStats, error) {
	body, err := c.httpGET(c.url + "/ledger/stats")
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve stats - %w", err)
	}

	var res stats.ContractStats
	if err = json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("unable to unmarshal stats - %w", err)
	}

	return &res, nil
}

// GetAccount retrieves the staking token balance of the given address.
func (c *Client) GetAccount(addr vesta.Address) (*accounts.Account, error) {
	body, err := c.httpGET(c.url + "/accounts/" + addr.String() + "/balance")
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve account - %w", err)
	}

	var acc accounts.Account
	if err = json.Unmarshal(body, &acc); err != nil {
		return nil, fmt.Errorf("unable to unmarshal account - %w", err)
	}

	return &acc, nil
}

// FilterEvents queries the event history with the given filter.
func (c *Client) FilterEvents(filter *eventdb.Filter) ([]*events.FilteredEvent, error) {
	body, err := c.httpPOST(c.url+"/events", filter, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to filter events - %w", err)
	}

	var fes []*events.FilteredEvent
	if err = json.Unmarshal(body, &fes); err != nil {
		return nil, fmt.Errorf("unable to unmarshal events - %w", err)
	}

	return fes, nil
}

// PostStake submits a signed stake of the given amount for the account
// and returns the updated staking position.
func (c *Client) PostStake(addr vesta.Address, amount *big.Int, auth Auth) (*stakers.StakingInfo, error) {
	payload := &stakers.AmountBody{Amount: (*math.HexOrDecimal256)(amount)}
	body, err := c.httpPOST(c.url+"/stakers/"+addr.String()+"/stake", payload, auth)
	if err != nil {
		return nil, fmt.Errorf("unable to stake - %w", err)
	}

	var info stakers.StakingInfo
	if err = json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("unable to unmarshal staker - %w", err)
	}

	return &info, nil
}

// PostUnstake submits a signed unstake of the given amount for the
// account and returns the updated staking position.
func (c *Client) PostUnstake(addr vesta.Address, amount *big.Int, auth Auth) (*stakers.StakingInfo, error) {
	payload := &stakers.AmountBody{Amount: (*math.HexOrDecimal256)(amount)}
	body, err := c.httpPOST(c.url+"/stakers/"+addr.String()+"/unstake", payload, auth)
	if err != nil {
		return nil, fmt.Errorf("unable to unstake - %w", err)
	}

	var info stakers.StakingInfo
	if err = json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("unable to unmarshal staker - %w", err)
	}

	return &info, nil
}

// PostClaim submits a signed reward claim for the account and returns
// the claimed amount.
func (c *Client) PostClaim(addr vesta.Address, auth Auth) (*stakers.ClaimResult, error) {
	body, err := c.httpPOST(c.url+"/stakers/"+addr.String()+"/claim", []byte{}, auth)
	if err != nil {
		return nil, fmt.Errorf("unable to claim rewards - %w", err)
	}

	var res stakers.ClaimResult
	if err = json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("unable to unmarshal claim result - %w", err)
	}

	return &res, nil
}

// RawHTTPPost sends a raw HTTP POST request to the specified endpoint with the provided data.
func (c *Client) RawHTTPPost(url string, calldata any) ([]byte, int, error) {
	var data []byte
	var err error

	if _, ok := calldata.([]byte); ok {
		data = calldata.([]byte)
	} else {
		data, err = json.Marshal(calldata)
		if err != nil {
			return nil, 0, fmt.Errorf("unable to marshal payload - %w", err)
		}
	}

	return c.rawHTTPRequest("POST", c.url+url, bytes.NewBuffer(data))
}

// RawHTTPGet sends a raw HTTP GET request to the specified endpoint.
func (c *Client) RawHTTPGet(url string) ([]byte, int, error) {
	return c.rawHTTPRequest("GET", c.url+url, nil)
}

func (c *Client) rawHTTPRequest(method, url string, payload io.Reader) ([]byte, int, error) {
	req, err := http.NewRequest(method, url, payload)
	if err != nil {
		return nil, 0, fmt.Errorf("error creating request: %w", err)
	}

	resp, err := c.c.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("error performing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("error reading response body: %w", err)
	}
	return body, resp.StatusCode, nil
}

func (c *Client) httpRequest(method, url string, payload []byte, auth Auth) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	if method == http.MethodPost {
		req.Header.Set("Content-Type", restutil.JSONContentType)
	}
	if auth != nil {
		if err := auth.SignRequest(req, payload); err != nil {
			return nil, fmt.Errorf("error signing request: %w", err)
		}
	}

	resp, err := c.c.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error performing request: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, common.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("http error - Status Code %d - %s - %w", resp.StatusCode, responseBody, common.ErrNot200Status)
	}
	return responseBody, nil
}

func (c *Client) httpGET(url string) ([]byte, error) {
	return c.httpRequest("GET", url, nil, nil)
}

func (c *Client) httpPOST(url string, payload any, auth Auth) ([]byte, error) {
	var data []byte
	var err error

	if _, ok := payload.([]byte); ok {
		data = payload.([]byte)
	} else {
		data, err = json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("unable to marshal payload - %w", err)
		}
	}

	return c.httpRequest("POST", url, data, auth)
}
