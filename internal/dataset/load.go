package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/KaramelBytes/discountlens/internal/logger"
)

// Columns lists accepted header names for each required field.
// Matching is case-insensitive and ignores surrounding whitespace.
type Columns struct {
	Name     []string
	Category []string
	Discount []string
	Revenue  []string
}

// DefaultColumns accepts the Korean headers of the original sales export
// as well as common English spellings.
func DefaultColumns() Columns {
	return Columns{
		Name:     []string{"상품명", "name", "product", "product_name"},
		Category: []string{"카테고리", "category"},
		Discount: []string{"할인율", "discount", "discount_percent", "discount_rate"},
		Revenue:  []string{"매출액", "revenue", "sales"},
	}
}

// Options controls how a dataset file is read.
type Options struct {
	// Delimiter for CSV. If 0, chosen from the file extension.
	Delimiter rune
	// SheetName selects an XLSX sheet; empty means the first sheet.
	SheetName string
	Columns   Columns
}

// DefaultOptions returns options with default column aliases.
func DefaultOptions() Options {
	return Options{Columns: DefaultColumns()}
}

// rowSource yields raw rows; it returns io.EOF after the last row.
type rowSource interface {
	Next() ([]string, error)
}

// Load reads a CSV/TSV or XLSX file into a Dataset.
func Load(path string, opt Options) (*Dataset, error) {
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		return LoadXLSX(path, opt)
	}
	return LoadCSV(path, opt)
}

// LoadCSV reads a delimited text file into a Dataset.
func LoadCSV(path string, opt Options) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	return readCSV(f, filepath.Base(path), sniffDelimiter(path, opt.Delimiter), opt.Columns)
}

// ReadCSV reads delimited text from r; name is used as the dataset source.
func ReadCSV(r io.Reader, name string, opt Options) (*Dataset, error) {
	return readCSV(r, name, sniffDelimiter(name, opt.Delimiter), opt.Columns)
}

func readCSV(r io.Reader, name string, delim rune, cols Columns) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.Comma = delim
	return build(name, csvSource{cr}, cols)
}

type csvSource struct{ r *csv.Reader }

func (s csvSource) Next() ([]string, error) { return s.r.Read() }

func sniffDelimiter(path string, delim rune) rune {
	if delim != 0 {
		return delim
	}
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}

type fieldIndex struct {
	name, category, discount, revenue int
}

func resolveColumns(header []string, cols Columns) (fieldIndex, error) {
	idx := fieldIndex{}
	var err error
	if idx.name, err = lookupColumn(header, "name", cols.Name); err != nil {
		return idx, err
	}
	if idx.category, err = lookupColumn(header, "category", cols.Category); err != nil {
		return idx, err
	}
	if idx.discount, err = lookupColumn(header, "discount", cols.Discount); err != nil {
		return idx, err
	}
	if idx.revenue, err = lookupColumn(header, "revenue", cols.Revenue); err != nil {
		return idx, err
	}
	return idx, nil
}

func lookupColumn(header []string, column string, aliases []string) (int, error) {
	for _, a := range aliases {
		want := strings.ToLower(strings.TrimSpace(a))
		for i, h := range header {
			if strings.ToLower(cleanHeader(h)) == want {
				return i, nil
			}
		}
	}
	return -1, &MissingColumnError{Column: column, Aliases: aliases, Header: header}
}

// cleanHeader strips whitespace and a UTF-8 byte order mark left by spreadsheet exports.
func cleanHeader(h string) string {
	return strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
}

func build(name string, src rowSource, cols Columns) (*Dataset, error) {
	header, err := src.Next()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDataset
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx, err := resolveColumns(header, cols)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{source: name}
	line := 1
	for {
		rec, err := src.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", line+1, err)
		}
		line++
		// only a truly empty name marks a blank row; whitespace is a name
		product := rawField(rec, idx.name)
		if product == "" {
			ds.skipped++
			continue
		}
		discount, err := parseInt(rec, idx.discount, line, "discount")
		if err != nil {
			return nil, err
		}
		revenue, err := parseInt(rec, idx.revenue, line, "revenue")
		if err != nil {
			return nil, err
		}
		ds.records = append(ds.records, Record{
			Name:            product,
			Category:        field(rec, idx.category),
			DiscountPercent: discount,
			Revenue:         revenue,
		})
	}
	logger.Debugf("loaded %s: %d records, %d blank rows skipped", name, len(ds.records), ds.skipped)
	if len(ds.records) == 0 {
		return nil, ErrEmptyDataset
	}
	return ds, nil
}

func rawField(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return rec[i]
}

func field(rec []string, i int) string {
	return strings.TrimSpace(rawField(rec, i))
}

func parseInt(rec []string, i, line int, column string) (int, error) {
	v := field(rec, i)
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, &ParseError{Row: line, Column: column, Value: v, Err: err}
	}
	return n, nil
}
