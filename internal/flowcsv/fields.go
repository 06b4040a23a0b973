package flowcsv

// fields.go holds the per-field normalization rules shared by both
// passes. Error messages here are user-facing: they name the column,
// the line, and the expected shape.

import (
	"fmt"
	"strconv"
	"strings"
)

// categorySeparator splits a raw categories cell into path segments,
// e.g. "water::surface water::freshwater".
const categorySeparator = "::"

// parseCategories splits a raw categories cell into trimmed, non-empty
// segments. A blank cell yields no categories; a non-blank cell that
// produces no usable segments is malformed.
func parseCategories(raw string, line int) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	var parts []string
	for _, segment := range strings.Split(raw, categorySeparator) {
		if segment = strings.TrimSpace(segment); segment != "" {
			parts = append(parts, segment)
		}
	}
	if len(parts) == 0 {
		return nil, &RowError{
			Line:    line,
			Column:  colCategories,
			Message: fmt.Sprintf("Row %d: categories column is malformed.", line),
		}
	}
	return parts, nil
}

// sanitizeCode derives a flow code from its name by replacing every
// space with an underscore. Other punctuation passes through
// unchanged.
func sanitizeCode(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
}

// parseCF parses a characterization factor cell. A missing cell reads
// as the empty string and fails with the same message as an
// unconvertible one.
func parseCF(raw string, line int) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, &RowError{
			Line:    line,
			Column:  colCF,
			Message: fmt.Sprintf("Row %d: cf column must contain a floating point value.", line),
		}
	}
	return value, nil
}

// indexHeader maps header cells to their positions and reports the
// required columns that are absent, in required-column order. Matching
// is exact after whitespace trimming; a duplicated header keeps its
// first position.
func indexHeader(header []string) (HeaderIndex, []string) {
	idx := make(HeaderIndex, len(header))
	for i, cell := range header {
		name := strings.TrimSpace(cell)
		if _, exists := idx[name]; !exists {
			idx[name] = i
		}
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	return idx, missing
}
