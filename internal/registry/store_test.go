package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeRows implements pgx.Rows over a fixed set of node ids.
type fakeRows struct {
	ids    []int64
	pos    int
	closed bool
}

func (r *fakeRows) Close()                                       { r.closed = true }
func (r *fakeRows) Err() error                                   { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Values() ([]any, error)                       { return nil, nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	r.pos++
	return r.pos <= len(r.ids)
}

func (r *fakeRows) Scan(dest ...any) error {
	if len(dest) != 1 {
		return fmt.Errorf("expected 1 destination, got %d", len(dest))
	}
	id, ok := dest[0].(*int64)
	if !ok {
		return fmt.Errorf("expected *int64 destination, got %T", dest[0])
	}
	*id = r.ids[r.pos-1]
	return nil
}

// fakeDB implements DBTX and records the query it receives.
type fakeDB struct {
	rows     *fakeRows
	queryErr error
	gotSQL   string
	gotArgs  []any
}

func (d *fakeDB) Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (d *fakeDB) QueryRow(context.Context, string, ...interface{}) pgx.Row {
	return nil
}

func (d *fakeDB) Query(_ context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	d.gotSQL = sql
	d.gotArgs = args
	if d.queryErr != nil {
		return nil, d.queryErr
	}
	return d.rows, nil
}

// ============================================================================
// FindNode Tests
// ============================================================================

func TestFindNode_SingleMatch(t *testing.T) {
	db := &fakeDB{rows: &fakeRows{ids: []int64{42}}}
	store := NewStore(db)

	id, err := store.FindNode(context.Background(), "Acetaminophen", "acetaminophen")
	if err != nil {
		t.Fatalf("FindNode() error = %v", err)
	}
	if id != 42 {
		t.Errorf("FindNode() = %d, want 42", id)
	}

	if len(db.gotArgs) != 2 || db.gotArgs[0] != "Acetaminophen" || db.gotArgs[1] != "acetaminophen" {
		t.Errorf("query args = %v", db.gotArgs)
	}
	if !db.rows.closed {
		t.Error("rows were not closed")
	}
}

func TestFindNode_NoMatch(t *testing.T) {
	db := &fakeDB{rows: &fakeRows{}}
	store := NewStore(db)

	_, err := store.FindNode(context.Background(), "Unknown", "unknown")
	if err == nil {
		t.Fatal("FindNode() expected error for zero matches")
	}
	if !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("error should wrap ErrNodeNotFound, got %v", err)
	}

	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("error is %T, want *NotFoundError", err)
	}
	if nf.Name != "Unknown" || nf.Code != "unknown" {
		t.Errorf("NotFoundError = %+v", nf)
	}
	if !strings.Contains(err.Error(), `"Unknown"`) || !strings.Contains(err.Error(), `"unknown"`) {
		t.Errorf("error = %q, should name both keys", err)
	}
}

func TestFindNode_MultipleMatches(t *testing.T) {
	db := &fakeDB{rows: &fakeRows{ids: []int64{1, 2, 3}}}
	store := NewStore(db)

	_, err := store.FindNode(context.Background(), "Dup", "dup")
	if err == nil {
		t.Fatal("FindNode() expected error for multiple matches")
	}
	if !errors.Is(err, ErrNodeAmbiguous) {
		t.Errorf("error should wrap ErrNodeAmbiguous, got %v", err)
	}

	var amb *AmbiguousError
	if !errors.As(err, &amb) {
		t.Fatalf("error is %T, want *AmbiguousError", err)
	}
	if amb.Count != 3 {
		t.Errorf("Count = %d, want 3", amb.Count)
	}
}

func TestFindNode_QueryError(t *testing.T) {
	queryErr := errors.New("connection refused")
	db := &fakeDB{queryErr: queryErr}
	store := NewStore(db)

	_, err := store.FindNode(context.Background(), "Flow", "flow")
	if !errors.Is(err, queryErr) {
		t.Errorf("error should wrap the query error, got %v", err)
	}
}

// Errors from the two failure modes stay distinguishable.
func TestFindNode_DistinctFailures(t *testing.T) {
	notFound := &NotFoundError{Name: "a", Code: "b"}
	ambiguous := &AmbiguousError{Name: "a", Code: "b", Count: 2}

	if errors.Is(notFound, ErrNodeAmbiguous) {
		t.Error("NotFoundError must not match ErrNodeAmbiguous")
	}
	if errors.Is(ambiguous, ErrNodeNotFound) {
		t.Error("AmbiguousError must not match ErrNodeNotFound")
	}
}
