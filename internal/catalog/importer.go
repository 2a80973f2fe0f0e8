package catalog

import (
	"io"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"

	"github.com/talkincode/toughshop/internal/domain"
)

type productRecord struct {
	ID          int64  `csv:"id"`
	Name        string `csv:"name"`
	Price       int64  `csv:"price"`
	Category    string `csv:"category"`
	Image       string `csv:"image"`
	Description string `csv:"description"`
}

// ImportCSV parses a catalog file with a header row.
// Columns: id (optional, 0 lets the database assign one), name, price,
// category, image, description.
func ImportCSV(r io.Reader) ([]*domain.Product, error) {
	var records []*productRecord
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, errors.Wrap(err, "parse catalog csv")
	}
	products := make([]*domain.Product, 0, len(records))
	for i, rec := range records {
		name := strings.TrimSpace(rec.Name)
		if name == "" {
			return nil, errors.Errorf("catalog csv row %d: name is required", i+1)
		}
		if rec.Price < 0 {
			return nil, errors.Errorf("catalog csv row %d: price must be >= 0", i+1)
		}
		products = append(products, &domain.Product{
			ID:          rec.ID,
			Name:        name,
			Price:       rec.Price,
			Category:    strings.TrimSpace(rec.Category),
			Image:       strings.TrimSpace(rec.Image),
			Description: strings.TrimSpace(rec.Description),
		})
	}
	return products, nil
}
