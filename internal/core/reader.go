package core

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"golang.org/x/text/encoding"
)

// ReadSource resolves spec.Path against root and reads it.
func ReadSource(root string, spec SourceSpec) (*RawTable, error) {
	path := resolvePath(root, spec.Path)
	raw, err := Read(path, spec.Election, spec.Encoding, spec.Format)
	if err != nil {
		return nil, err
	}
	raw.Source = spec
	return raw, nil
}

func resolvePath(root, path string) string {
	if filepath.IsAbs(path) || root == "" {
		return path
	}
	return filepath.Join(root, path)
}

// Read parses one election's source file into a RawTable using the default
// admission predicate. A missing file yields an error matching ErrSourceNotFound.
func Read(path string, election ElectionID, enc Encoding, format Format) (*RawTable, error) {
	return ReadWith(path, election, enc, format, Admit)
}

// ReadWith is Read with a caller-supplied admission predicate.
func ReadWith(path string, election ElectionID, enc Encoding, format Format, admit AdmitFunc) (*RawTable, error) {
	fail := func(err error) (*RawTable, error) {
		return nil, &SourceError{Election: election, Path: path, Err: err}
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fail(fmt.Errorf("%w: %s", ErrSourceNotFound, filepath.Base(path)))
		}
		return fail(err)
	}

	var (
		records recordSource
		err     error
	)
	switch format {
	case FormatCSV:
		records, err = openCSV(path, enc)
	case FormatXLS:
		records, err = openXLS(path, enc)
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return fail(err)
	}
	defer records.Close()

	header, err := records.Next()
	if err == io.EOF {
		return fail(ErrEmptySource)
	}
	if err != nil {
		return fail(fmt.Errorf("read header: %w", err))
	}

	raw := &RawTable{
		Election: election,
		Source:   SourceSpec{Election: election, Path: path, Encoding: enc, Format: format},
	}

	// Admission is decided once, from the header, so rejected cells are never copied.
	keep := make([]int, 0, len(header))
	for i, name := range header {
		if admit(name) {
			keep = append(keep, i)
			raw.Columns = append(raw.Columns, name)
		} else {
			raw.Dropped = append(raw.Dropped, name)
		}
	}

	for line := 2; ; line++ {
		rec, err := records.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fail(fmt.Errorf("line %d: %w", line, err))
		}
		if isBlankRecord(rec) {
			continue
		}

		row := make([]string, len(keep))
		for j, idx := range keep {
			if idx < len(rec) {
				row[j] = rec[idx]
			}
		}
		raw.Rows = append(raw.Rows, row)
	}
	raw.Bytes = records.BytesRead()

	return raw, nil
}

func isBlankRecord(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// recordSource yields one record per call, io.EOF at the end.
type recordSource interface {
	Next() ([]string, error)
	BytesRead() int64
	Close() error
}

type csvSource struct {
	f       *os.File
	counter *countingReader
	r       *csv.Reader
}

func openCSV(path string, enc Encoding) (*csvSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	counter := newCountingReader(f)
	decoded, err := decodeReader(counter, enc)
	if err != nil {
		f.Close()
		return nil, err
	}

	r := csv.NewReader(decoded)
	r.FieldsPerRecord = -1 // exports are ragged; missing trailing cells read as empty
	r.LazyQuotes = true    // stray quotes inside headers are cleaned later
	return &csvSource{f: f, counter: counter, r: r}, nil
}

func (s *csvSource) Next() ([]string, error) { return s.r.Read() }
func (s *csvSource) BytesRead() int64        { return s.counter.BytesRead() }
func (s *csvSource) Close() error            { return s.f.Close() }

// xlsSource walks the first worksheet of a legacy workbook row by row.
type xlsSource struct {
	closer io.Closer
	size   int64
	sheet  *xls.WorkSheet
	row    int
	dec    *encoding.Decoder // set for BIFF5 workbooks with 8-bit strings
}

func openXLS(path string, enc Encoding) (*xlsSource, error) {
	dec, err := decoderFor(enc)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	// The workbook reads sheets lazily, so f stays open until Close. The
	// parser ignores its charset argument; decoding happens per cell below.
	wb, err := xls.OpenReader(f, "")
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	if wb == nil {
		f.Close()
		return nil, errors.New("open workbook: no workbook stream")
	}
	if wb.NumSheets() == 0 {
		f.Close()
		return nil, ErrEmptySource
	}

	src := &xlsSource{closer: f, sheet: wb.GetSheet(0)}
	if info, err := f.Stat(); err == nil {
		src.size = info.Size()
	}
	// BIFF8 strings are UTF-16 and need nothing. BIFF5 strings come back as
	// raw code page bytes.
	if wb.Is5ver && singleByte(enc) {
		src.dec = dec
	}
	return src, nil
}

func (s *xlsSource) Next() ([]string, error) {
	if s.sheet == nil {
		return nil, io.EOF
	}
	for s.row <= int(s.sheet.MaxRow) {
		r, ok := sheetRow(s.sheet, s.row)
		s.row++
		if !ok {
			continue
		}
		cells := make([]string, r.LastCol())
		for c := r.FirstCol(); c < r.LastCol(); c++ {
			cell := r.Col(c)
			if s.dec != nil {
				decoded, err := s.dec.String(cell)
				if err != nil {
					return nil, fmt.Errorf("row %d: decode cell %d: %w", s.row, c+1, err)
				}
				cell = decoded
			}
			cells[c] = cell
		}
		return cells, nil
	}
	return nil, io.EOF
}

// sheetRow returns row i, or false when the sheet stored nothing for it.
// WorkSheet.Row panics on such rows instead of returning nil.
func sheetRow(sheet *xls.WorkSheet, i int) (row *xls.Row, ok bool) {
	defer func() {
		if recover() != nil {
			row, ok = nil, false
		}
	}()
	return sheet.Row(i), true
}

// BytesRead reports the workbook size; the parser reads it as a whole.
func (s *xlsSource) BytesRead() int64 { return s.size }
func (s *xlsSource) Close() error     { return s.closer.Close() }
