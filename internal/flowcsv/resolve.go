package flowcsv

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// ResolveNodes reads a CF import file and resolves every data row to a
// (node id, cf) pair through finder, in input order.
//
// The first data row establishes the target database name; every
// subsequent row must name the same database. Rows are validated
// exactly as in ParseFlows, and each lookup is synchronous with no
// caching or deduplication. Lookup failures from finder surface to the
// caller as-is.
func ResolveNodes(ctx context.Context, path string, finder NodeFinder) ([]ResolvedPair, error) {
	fr, err := openFlowCSV(path)
	if err != nil {
		return nil, err
	}
	defer fr.close()

	var (
		pairs    []ResolvedPair
		database string
		firstRow = true
	)
	for {
		row, err := fr.next()
		if err == io.EOF {
			if firstRow {
				return nil, &SchemaError{Message: "CSV file is empty (no data rows)."}
			}
			return pairs, nil
		}
		if err != nil {
			return nil, err
		}

		rowDB := strings.TrimSpace(fr.cell(row, colDatabase))
		if firstRow {
			if rowDB == "" {
				return nil, &RowError{
					Line:    fr.line,
					Column:  colDatabase,
					Message: "Database name is missing in the 'new_database' column.",
				}
			}
			database = rowDB
			firstRow = false
		} else if rowDB != database {
			return nil, &RowError{
				Line:   fr.line,
				Column: colDatabase,
				Message: fmt.Sprintf(
					"Row %d: Database name mismatch. Expected '%s', found '%s'. All rows must use the same database.",
					fr.line, database, rowDB),
			}
		}

		// Categories are validated but not part of the result.
		if _, err := parseCategories(fr.cell(row, colCategories), fr.line); err != nil {
			return nil, err
		}

		cf, err := parseCF(fr.cell(row, colCF), fr.line)
		if err != nil {
			return nil, err
		}

		name := strings.TrimSpace(fr.cell(row, colFlowName))
		code := strings.TrimSpace(fr.cell(row, colCode))
		if code == "" {
			code = sanitizeCode(name)
		}

		id, err := finder.FindNode(ctx, name, code)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, ResolvedPair{NodeID: id, CF: cf})
	}
}
