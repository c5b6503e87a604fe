// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/vestachain/vesta/api/restutil"
	"github.com/vestachain/vesta/co"
	"github.com/vestachain/vesta/eventdb"
	"github.com/vestachain/vesta/log"
	"github.com/vestachain/vesta/vesta"
)

const (
	// time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second
	// send pings to the peer with this period, must be less than pongWait
	pingPeriod = (pongWait * 9) / 10
	// time allowed to write a message to the peer
	writeWait = 10 * time.Second
)

var logger = log.WithContext("pkg", "subscriptions")

// Subscriptions streams ledger events to websocket clients as the
// recorder appends them to the event index.
type Subscriptions struct {
	db       *eventdb.EventDB
	tick     *co.Signal
	upgrader *websocket.Upgrader
	done     chan struct{}
	wg       sync.WaitGroup
}

// New creates the subscriptions endpoint over the event index. tick
// must be broadcast whenever new events land in db.
func New(db *eventdb.EventDB, tick *co.Signal, allowedOrigins []string) *Subscriptions {
	return &Subscriptions{
		db:   db,
		tick: tick,
		upgrader: &websocket.Upgrader{
			EnableCompression: true,
			CheckOrigin: func(req *http.Request) bool {
				origin := req.Header.Get("Origin")
				if origin == "" {
					return true
				}
				for _, allowed := range allowedOrigins {
					if allowed == "*" || strings.EqualFold(allowed, origin) {
						return true
					}
				}
				return false
			},
		},
		done: make(chan struct{}),
	}
}

func (s *Subscriptions) handleSubscribeEvents(w http.ResponseWriter, req *http.Request) error {
	s.wg.Add(1)
	defer s.wg.Done()

	reader, err := s.newReader(req)
	if err != nil {
		return err
	}

	conn, closed, err := s.setupConn(w, req)
	if err != nil {
		// the upgrader has already replied to the client
		logger.Debug("failed to upgrade to websocket", "err", err)
		return nil
	}

	err = s.pipe(conn, reader, closed)
	if err != nil {
		logger.Debug("event subscription interrupted", "err", err)
	}
	s.closeConn(conn, err)
	return nil
}

// newReader parses the subscription arguments before the connection is
// upgraded, so that invalid requests still get a regular http error.
func (s *Subscriptions) newReader(req *http.Request) (*eventReader, error) {
	var (
		query   = req.URL.Query()
		name    = query.Get("name")
		account *vesta.Address
	)
	if str := query.Get("account"); str != "" {
		addr, err := vesta.ParseAddress(str)
		if err != nil {
			return nil, restutil.BadRequest(errors.WithMessage(err, "account"))
		}
		account = &addr
	}

	head, err := s.db.MaxSeq()
	if err != nil {
		return nil, err
	}
	pos := head
	if str := query.Get("pos"); str != "" {
		parsed, err := strconv.ParseUint(str, 10, 63)
		if err != nil {
			return nil, restutil.BadRequest(errors.WithMessage(err, "pos"))
		}
		if int64(parsed) > head {
			return nil, restutil.BadRequest(errors.New("pos: beyond the latest event"))
		}
		pos = int64(parsed)
	}
	return newEventReader(s.db, pos, name, account), nil
}

func (s *Subscriptions) setupConn(w http.ResponseWriter, req *http.Request) (*websocket.Conn, chan struct{}, error) {
	conn, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		return nil, nil, err
	}

	closed := make(chan struct{})
	// the read loop drains client messages and surfaces the close
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	conn.SetPingHandler(func(payload string) error {
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteMessage(websocket.PongMessage, []byte(payload))
	})
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	return conn, closed, nil
}

func (s *Subscriptions) closeConn(conn *websocket.Conn, err error) {
	closeMsg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if err != nil {
		closeMsg = websocket.FormatCloseMessage(websocket.CloseInternalServerErr, err.Error())
	}
	if err := conn.WriteControl(websocket.CloseMessage, closeMsg, time.Now().Add(time.Second)); err != nil {
		logger.Debug("failed to write close message", "err", err)
	}
	if err := conn.Close(); err != nil {
		logger.Debug("failed to close websocket", "err", err)
	}
}

// pipe drains the reader into the connection, waiting on the tick
// signal when it catches up with the head of the event index.
func (s *Subscriptions) pipe(conn *websocket.Conn, reader *eventReader, closed chan struct{}) error {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	waiter := s.tick.NewWaiter()
	for {
		msgs, hasMore, err := reader.Read()
		if err != nil {
			return errors.WithMessage(err, "read events")
		}
		for _, msg := range msgs {
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return err
			}
		}
		if hasMore {
			select {
			case <-s.done:
				return nil
			case <-closed:
				return nil
			default:
			}
			continue
		}
		select {
		case <-s.done:
			return nil
		case <-closed:
			return nil
		case <-waiter.C():
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return err
			}
		}
	}
}

// Close breaks all open subscriptions and waits for their handlers to
// return.
func (s *Subscriptions) Close() {
	close(s.done)
	s.wg.Wait()
}

func (s *Subscriptions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/event").
		Methods(http.MethodGet).
		Name("GET /subscriptions/event").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleSubscribeEvents))
}
