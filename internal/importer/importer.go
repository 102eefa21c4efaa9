package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"shopping-cart/internal/domain"

	"github.com/shopspring/decimal"
)

type ProductWriter interface {
	Upsert(ctx context.Context, item domain.CatalogItem) (*domain.CatalogItem, error)
}

// CSVImporter reads catalog CSV files with the columns code, description and
// price (header required, column order free) and upserts each row.
type CSVImporter struct {
	reader      *csv.Reader
	productRepo ProductWriter
}

func NewCSVImporter(r io.Reader, repo ProductWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	csvr.TrimLeadingSpace = true
	return &CSVImporter{
		reader:      csvr,
		productRepo: repo,
	}
}

var requiredColumns = []string{"code", "description", "price"}

// Run imports every data row and returns how many products were written.
// Blank lines are skipped; the first invalid row stops the import.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return 0, fmt.Errorf("missing column %q", col)
		}
	}

	imported := 0
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		line, _ := i.reader.FieldPos(0)

		item, skip, err := parseRow(record, index)
		if err != nil {
			return imported, fmt.Errorf("line %d: %w", line, err)
		}
		if skip {
			continue
		}
		if _, err := i.productRepo.Upsert(ctx, item); err != nil {
			return imported, fmt.Errorf("upsert product %d: %w", item.Product.Code(), err)
		}
		imported++
	}
	return imported, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) (domain.CatalogItem, bool, error) {
	codeStr := pick(record, index, "code")
	desc := pick(record, index, "description")
	priceStr := pick(record, index, "price")

	if codeStr == "" && desc == "" && priceStr == "" {
		return domain.CatalogItem{}, true, nil
	}
	if codeStr == "" || desc == "" || priceStr == "" {
		return domain.CatalogItem{}, false, fmt.Errorf("invalid product row (missing required fields) for code %q", codeStr)
	}

	code, err := strconv.ParseInt(codeStr, 10, 64)
	if err != nil {
		return domain.CatalogItem{}, false, fmt.Errorf("invalid code %q: %w", codeStr, err)
	}
	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		return domain.CatalogItem{}, false, fmt.Errorf("invalid price %q for code %d: %w", priceStr, code, err)
	}

	return domain.CatalogItem{
		Product:   domain.NewProduct(code, desc),
		ListPrice: price,
	}, false, nil
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
