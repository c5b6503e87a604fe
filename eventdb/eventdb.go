// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package eventdb indexes committed ledger events in sqlite so the history
// stays queryable by account, kind, sequence and time.
package eventdb

import (
	"database/sql"
	"math/big"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/vestachain/vesta/vesta"
)

type RangeType string

const (
	Seq  RangeType = "Seq"
	Time RangeType = "Time"
)

type OrderType string

const (
	ASC  OrderType = "ASC"
	DESC OrderType = "DESC"
)

// Range selects events between From and To inclusive, counted in the unit.
type Range struct {
	Unit RangeType `json:"unit"`
	From uint64    `json:"from"`
	To   uint64    `json:"to"`
}

type Options struct {
	Offset uint64 `json:"offset"`
	Limit  uint64 `json:"limit"`
}

// Filter narrows a query. Zero fields match everything.
type Filter struct {
	Name    string         `json:"name"`
	Account *vesta.Address `json:"account"`
	Order   OrderType      `json:"order"` // default asc
	Range   *Range
	Options *Options
}

// EventDB manages the event index.
type EventDB struct {
	path          string
	db            *sql.DB
	sqliteVersion string
}

// New opens the event db at path, creating the schema when missing.
func New(path string) (*EventDB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(eventTableSchema); err != nil {
		return nil, err
	}
	s := sqliteVersion()
	return &EventDB{
		path:          path,
		db:            db,
		sqliteVersion: s,
	}, nil
}

// NewMem creates an in-memory event db.
func NewMem() (*EventDB, error) {
	db, err := New(":memory:")
	if err != nil {
		return nil, err
	}
	// a second pooled connection would open its own empty in-memory db
	db.db.SetMaxOpenConns(1)
	return db, nil
}

// Insert appends events to the index in one transaction. Sequence numbers
// are assigned here, in insertion order.
func (db *EventDB) Insert(events []*Event) error {
	if len(events) == 0 {
		return nil
	}
	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	for _, event := range events {
		if _, err = tx.Exec("INSERT INTO event(name, account, amount, penalty, ts) VALUES (?, ?, ?, ?, ?);",
			event.Name,
			event.Account.Bytes(),
			event.Amount.String(),
			event.Penalty.String(),
			event.Timestamp); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Filter returns the events matching the filter, a nil filter matches all.
func (db *EventDB) Filter(filter *Filter) ([]*Event, error) {
	if filter == nil {
		return db.query("SELECT * FROM event")
	}
	var args []interface{}
	stmt := "SELECT * FROM event WHERE 1"
	if filter.Range != nil {
		condition := "seq"
		if filter.Range.Unit == Time {
			condition = "ts"
		}
		args = append(args, filter.Range.From)
		stmt += " AND " + condition + " >= ? "
		if filter.Range.To >= filter.Range.From {
			args = append(args, filter.Range.To)
			stmt += " AND " + condition + " <= ? "
		}
	}
	if filter.Name != "" {
		args = append(args, filter.Name)
		stmt += " AND name = ? "
	}
	if filter.Account != nil {
		args = append(args, filter.Account.Bytes())
		stmt += " AND account = ? "
	}

	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC "
	} else {
		stmt += " ORDER BY seq ASC "
	}

	if filter.Options != nil {
		stmt += " limit ?, ? "
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.query(stmt, args...)
}

func (db *EventDB) query(stmt string, args ...interface{}) ([]*Event, error) {
	rows, err := db.db.Query(stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		var (
			seq     int64
			name    string
			account []byte
			amount  string
			penalty string
			ts      uint64
		)
		if err := rows.Scan(
			&seq,
			&name,
			&account,
			&amount,
			&penalty,
			&ts,
		); err != nil {
			return nil, err
		}
		event := &Event{
			Seq:       seq,
			Name:      name,
			Account:   vesta.BytesToAddress(account),
			Timestamp: ts,
		}
		var ok bool
		if event.Amount, ok = new(big.Int).SetString(amount, 10); !ok {
			return nil, errors.New("corrupted amount column")
		}
		if event.Penalty, ok = new(big.Int).SetString(penalty, 10); !ok {
			return nil, errors.New("corrupted penalty column")
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// MaxSeq returns the highest assigned sequence number, zero when the
// index is empty.
func (db *EventDB) MaxSeq() (int64, error) {
	row := db.db.QueryRow("SELECT IFNULL(MAX(seq), 0) FROM event")
	var seq int64
	if err := row.Scan(&seq); err != nil {
		return 0, err
	}
	return seq, nil
}

// Path returns the db file path.
func (db *EventDB) Path() string {
	return db.path
}

// Close closes the underlying sqlite handle.
func (db *EventDB) Close() {
	db.db.Close()
}
