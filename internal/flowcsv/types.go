package flowcsv

import "context"

// Column names of the import file schema.
const (
	colDatabase   = "new_database"
	colFlowName   = "flow_name"
	colCode       = "code"
	colUnit       = "unit"
	colCASNumber  = "CAS number"
	colCategories = "categories"
	colCF         = "cf"
)

// RequiredColumns lists the headers every import file must contain.
// Missing columns are reported in this order.
var RequiredColumns = []string{
	colDatabase,
	colFlowName,
	colCode,
	colUnit,
	colCASNumber,
	colCategories,
	colCF,
}

// FlowRecord is the normalized form of one data row.
type FlowRecord struct {
	Database   string   // target database name (new_database column)
	Name       string   // flow display name
	Code       string   // unique code within the database; derived from Name when blank
	Unit       string
	CASNumber  string   // may be empty
	Categories []string // trimmed, non-empty segments; empty when the raw cell is blank
	CF         float64  // characterization factor
}

// ResolvedPair is the result of resolving one data row against the
// node registry.
type ResolvedPair struct {
	NodeID int64
	CF     float64
}

// NodeFinder resolves a (name, code) pair to a node identifier in the
// target database. Implementations must fail distinctly when zero or
// more than one node matches.
type NodeFinder interface {
	FindNode(ctx context.Context, name, code string) (int64, error)
}

// HeaderIndex maps column names to their position in the header row.
type HeaderIndex map[string]int
