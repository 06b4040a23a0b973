package flowcsv

import (
	"encoding/csv"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"
)

// ParseFlows reads a CF import file and returns one FlowRecord per
// data row, preserving input order. The pass stops at the first
// problem; there is no partial-result recovery.
func ParseFlows(path string) ([]FlowRecord, error) {
	fr, err := openFlowCSV(path)
	if err != nil {
		return nil, err
	}
	defer fr.close()

	var flows []FlowRecord
	for {
		row, err := fr.next()
		if err == io.EOF {
			return flows, nil
		}
		if err != nil {
			return nil, err
		}

		rec, err := fr.buildRecord(row)
		if err != nil {
			return nil, err
		}
		flows = append(flows, rec)
	}
}

// flowReader is a positioned CSV reader over a validated import file.
type flowReader struct {
	file   *os.File
	csv    *csv.Reader
	header HeaderIndex
	line   int // line of the most recently read data row, header = 1
}

// openFlowCSV checks that path exists, opens it, and validates the
// header row. The caller owns the returned reader and must close it.
func openFlowCSV(path string) (*flowReader, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	r := csv.NewReader(newBOMReader(file))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	headerRow, err := r.Read()
	if err == io.EOF {
		// A file with no header at all is missing every column.
		file.Close()
		return nil, &SchemaError{Missing: RequiredColumns}
	}
	if err != nil {
		file.Close()
		return nil, err
	}

	idx, missing := indexHeader(headerRow)
	if len(missing) > 0 {
		file.Close()
		return nil, &SchemaError{Missing: missing}
	}

	return &flowReader{file: file, csv: r, header: idx, line: 1}, nil
}

// next returns the next data row, or io.EOF after the last one. Blank
// lines are skipped by the CSV reader and do not advance the count.
func (fr *flowReader) next() ([]string, error) {
	row, err := fr.csv.Read()
	if err != nil {
		return nil, err
	}
	fr.line++
	return row, nil
}

func (fr *flowReader) close() error {
	return fr.file.Close()
}

// cell returns the named column's raw value for row, or "" when the
// row is shorter than the header.
func (fr *flowReader) cell(row []string, col string) string {
	pos, ok := fr.header[col]
	if !ok || pos >= len(row) {
		return ""
	}
	return row[pos]
}

// buildRecord normalizes the current data row into a FlowRecord.
func (fr *flowReader) buildRecord(row []string) (FlowRecord, error) {
	categories, err := parseCategories(fr.cell(row, colCategories), fr.line)
	if err != nil {
		return FlowRecord{}, err
	}

	cf, err := parseCF(fr.cell(row, colCF), fr.line)
	if err != nil {
		return FlowRecord{}, err
	}

	name := strings.TrimSpace(fr.cell(row, colFlowName))
	code := strings.TrimSpace(fr.cell(row, colCode))
	if code == "" {
		code = sanitizeCode(name)
	}

	return FlowRecord{
		Database:   strings.TrimSpace(fr.cell(row, colDatabase)),
		Name:       name,
		Code:       code,
		Unit:       strings.TrimSpace(fr.cell(row, colUnit)),
		CASNumber:  strings.TrimSpace(fr.cell(row, colCASNumber)),
		Categories: categories,
		CF:         cf,
	}, nil
}
