// Package registry resolves flow identities against the node table of
// a life-cycle-assessment database.
//
// A node is addressable by its (name, code) natural key and carries an
// integer identifier. Lookups must match exactly one node; zero and
// multiple matches fail with distinct errors so callers can tell a
// missing flow apart from an ambiguous one.
package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Sentinel errors for errors.Is checks.
var (
	ErrNodeNotFound  = errors.New("node not found")
	ErrNodeAmbiguous = errors.New("multiple nodes match")
)

// NotFoundError reports that no node matches a (name, code) pair.
type NotFoundError struct {
	Name string
	Code string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no node found with name %q and code %q", e.Name, e.Code)
}

func (e *NotFoundError) Unwrap() error { return ErrNodeNotFound }

// AmbiguousError reports that more than one node matches a
// (name, code) pair.
type AmbiguousError struct {
	Name  string
	Code  string
	Count int
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("%d nodes found with name %q and code %q, expected exactly one",
		e.Count, e.Name, e.Code)
}

func (e *AmbiguousError) Unwrap() error { return ErrNodeAmbiguous }

const findNodeSQL = `SELECT id FROM nodes WHERE name = $1 AND code = $2`

// Store looks up nodes by their (name, code) natural key.
type Store struct {
	db DBTX
}

// NewStore creates a store backed by db.
func NewStore(db DBTX) *Store {
	return &Store{db: db}
}

// FindNode returns the id of the single node matching name and code.
// It implements flowcsv.NodeFinder.
func (s *Store) FindNode(ctx context.Context, name, code string) (int64, error) {
	rows, err := s.db.Query(ctx, findNodeSQL, name, code)
	if err != nil {
		return 0, fmt.Errorf("query nodes: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return 0, fmt.Errorf("scan nodes: %w", err)
	}

	switch len(ids) {
	case 0:
		return 0, &NotFoundError{Name: name, Code: code}
	case 1:
		return ids[0], nil
	default:
		return 0, &AmbiguousError{Name: name, Code: code, Count: len(ids)}
	}
}
