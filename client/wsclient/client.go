// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package wsclient provides the websocket client for the staking ledger
// event subscriptions.
package wsclient

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/vestachain/vesta/api/subscriptions"
	"github.com/vestachain/vesta/client/common"
)

type Client struct {
	host   string
	scheme string
}

func NewClient(url string) (*Client, error) {
	var host string
	var scheme string

	if strings.Contains(url, "https://") || strings.Contains(url, "wss://") {
		host = strings.TrimPrefix(strings.TrimPrefix(url, "https://"), "wss://")
		scheme = "wss"
	} else if strings.Contains(url, "http://") || strings.Contains(url, "ws://") {
		host = strings.TrimPrefix(strings.TrimPrefix(url, "http://"), "ws://")
		scheme = "ws"
	} else {
		return nil, fmt.Errorf("invalid url")
	}

	return &Client{
		host:   strings.TrimSuffix(host, "/"),
		scheme: scheme,
	}, nil
}

// SubscribeEvents opens a subscription to the ledger event stream. query
// carries the raw url query, e.g. "pos=0&name=Staked".
func (c *Client) SubscribeEvents(query string) (<-chan common.EventWrapper[*subscriptions.EventMessage], error) {
	conn, err := c.connect("/subscriptions/event", query)
	if err != nil {
		return nil, fmt.Errorf("unable to connect - %w", err)
	}

	return subscribe[subscriptions.EventMessage](conn), nil
}

// subscribe pumps messages of type T from the connection into a channel.
// The channel is closed after the first read error, which is also the way
// a server-side close surfaces.
func subscribe[T any](conn *websocket.Conn) <-chan common.EventWrapper[*T] {
	eventChan := make(chan common.EventWrapper[*T])

	go func() {
		defer close(eventChan)
		defer conn.Close()

		for {
			var data T
			if err := conn.ReadJSON(&data); err != nil {
				eventChan <- common.EventWrapper[*T]{Error: fmt.Errorf("%w: %w", common.ErrUnexpectedMsg, err)}
				return
			}

			eventChan <- common.EventWrapper[*T]{Data: &data}
		}
	}()

	return eventChan
}

func (c *Client) connect(endpoint, rawQuery string) (*websocket.Conn, error) {
	u := url.URL{
		Scheme:   c.scheme,
		Host:     c.host,
		Path:     endpoint,
		RawQuery: rawQuery,
	}

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return nil, err
	}
	return conn, nil
}
