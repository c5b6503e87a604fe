// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package events exposes the ledger event history kept in the event index.
package events

import (
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vestachain/vesta/api/restutil"
	"github.com/vestachain/vesta/eventdb"
	"github.com/vestachain/vesta/vesta"
)

type Events struct {
	db    *eventdb.EventDB
	limit uint64
}

// New creates the handler. limit caps how many events one query may return.
func New(db *eventdb.EventDB, limit uint64) *Events {
	return &Events{
		db,
		limit,
	}
}

func (e *Events) filter(filter *eventdb.Filter) ([]*FilteredEvent, error) {
	if filter.Options != nil && filter.Options.Limit > e.limit {
		return nil, restutil.Forbidden(fmt.Errorf("options.limit exceeds the maximum allowed value of %d", e.limit))
	}
	if filter.Options == nil {
		// one past the limit, to detect queries that need pagination
		filter.Options = &eventdb.Options{
			Offset: 0,
			Limit:  e.limit + 1,
		}
	}
	events, err := e.db.Filter(filter)
	if err != nil {
		return nil, err
	}
	if uint64(len(events)) > e.limit {
		return nil, restutil.Forbidden(fmt.Errorf("the number of filtered events exceeds the maximum allowed value of %d, please use pagination", e.limit))
	}
	fes := make([]*FilteredEvent, len(events))
	for i, ev := range events {
		fes[i] = convertEvent(ev)
	}
	return fes, nil
}

func (e *Events) handleFilter(w http.ResponseWriter, req *http.Request) error {
	var filter eventdb.Filter
	if err := restutil.ParseJSON(req.Body, &filter); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	fes, err := e.filter(&filter)
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, fes)
}

func (e *Events) handleGet(w http.ResponseWriter, req *http.Request) error {
	filter, err := parseQueryFilter(req.URL.Query())
	if err != nil {
		return err
	}
	fes, err := e.filter(filter)
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, fes)
}

// parseQueryFilter maps url query parameters onto the filter the index
// understands, for quick lookups without a JSON body.
func parseQueryFilter(query url.Values) (*eventdb.Filter, error) {
	filter := &eventdb.Filter{
		Name: query.Get("name"),
	}
	if s := query.Get("account"); s != "" {
		addr, err := vesta.ParseAddress(s)
		if err != nil {
			return nil, restutil.BadRequest(errors.WithMessage(err, "account"))
		}
		filter.Account = &addr
	}
	switch s := query.Get("order"); {
	case s == "" || strings.EqualFold(s, string(eventdb.ASC)):
	case strings.EqualFold(s, string(eventdb.DESC)):
		filter.Order = eventdb.DESC
	default:
		return nil, restutil.BadRequest(errors.New("order: expected asc or desc"))
	}

	parseUint := func(name string) (uint64, bool, error) {
		s := query.Get(name)
		if s == "" {
			return 0, false, nil
		}
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return 0, false, restutil.BadRequest(errors.WithMessage(err, name))
		}
		return n, true, nil
	}

	from, hasFrom, err := parseUint("from")
	if err != nil {
		return nil, err
	}
	to, hasTo, err := parseUint("to")
	if err != nil {
		return nil, err
	}
	if hasFrom || hasTo {
		unit := eventdb.Seq
		switch s := query.Get("unit"); {
		case s == "" || strings.EqualFold(s, string(eventdb.Seq)):
		case strings.EqualFold(s, string(eventdb.Time)):
			unit = eventdb.Time
		default:
			return nil, restutil.BadRequest(errors.New("unit: expected seq or time"))
		}
		if !hasTo {
			// open above; sqlite integers are signed
			to = math.MaxInt64
		}
		filter.Range = &eventdb.Range{
			Unit: unit,
			From: from,
			To:   to,
		}
	}

	offset, hasOffset, err := parseUint("offset")
	if err != nil {
		return nil, err
	}
	limit, hasLimit, err := parseUint("limit")
	if err != nil {
		return nil, err
	}
	if hasOffset && !hasLimit {
		return nil, restutil.BadRequest(errors.New("limit: required when offset is set"))
	}
	if hasLimit {
		filter.Options = &eventdb.Options{
			Offset: offset,
			Limit:  limit,
		}
	}
	return filter, nil
}

func (e *Events) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /events").
		HandlerFunc(restutil.WrapHandlerFunc(e.handleGet))
	sub.Path("").
		Methods(http.MethodPost).
		Name("POST /events").
		HandlerFunc(restutil.WrapHandlerFunc(e.handleFilter))
}
