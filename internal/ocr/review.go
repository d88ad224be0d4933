package ocr

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sitewise-app/sitewise/internal/importer"
)

// StagedItem is one reviewed invoice entry. Every field is the human's
// final word; scanner prefills carry no special status once edited.
type StagedItem struct {
	ProductCode string `json:"productCode"`
	Name        string `json:"name"`
	Brand       string `json:"brand"`
	Category    string `json:"category"`
	Quantity    string `json:"quantity"`
	Unit        string `json:"unit"`
	Price       string `json:"price"`
}

// ItemIssue is one failed item in a review save, indexed by list position.
type ItemIssue struct {
	Item    int    `json:"item"`
	Message string `json:"message"`
}

// SaveResult tallies a review save. Items fail independently; one failure
// never aborts the remaining items.
type SaveResult struct {
	SavedCount int         `json:"savedCount"`
	ErrorCount int         `json:"errorCount"`
	Errors     []ItemIssue `json:"errors"`
}

// Review saves human-confirmed invoice items into the material catalog.
// There is no preview or duplicate stage on this path: visual confirmation
// by the reviewer substitutes for both.
type Review struct {
	writer importer.Writer
	log    *slog.Logger
}

// NewReview creates a review saver.
func NewReview(writer importer.Writer, log *slog.Logger) *Review {
	return &Review{writer: writer, log: log}
}

// Save persists each item independently and tallies the outcome.
func (r *Review) Save(ctx context.Context, items []StagedItem) *SaveResult {
	res := &SaveResult{Errors: []ItemIssue{}}

	for i, item := range items {
		if err := r.saveItem(ctx, item); err != nil {
			r.log.Error("staged item save failed",
				slog.Int("item", i+1),
				slog.String("error", err.Error()),
			)
			res.ErrorCount++
			res.Errors = append(res.Errors, ItemIssue{Item: i + 1, Message: err.Error()})
			continue
		}
		res.SavedCount++
	}
	return res
}

func (r *Review) saveItem(ctx context.Context, item StagedItem) error {
	m, err := item.material()
	if err != nil {
		return err
	}
	return r.writer.Insert(ctx, "materials", m)
}

// material converts the reviewed fields into a catalog entity, applying the
// same coercion rules as the spreadsheet path.
func (it StagedItem) material() (*importer.Material, error) {
	name := strings.TrimSpace(it.Name)
	if name == "" {
		return nil, errors.New("item is missing a product name")
	}

	m := &importer.Material{
		ProductCode: strings.TrimSpace(it.ProductCode),
		Brand:       strings.TrimSpace(it.Brand),
		Name:        name,
		Category:    strings.TrimSpace(it.Category),
		Unit:        strings.TrimSpace(it.Unit),
	}

	if raw := strings.TrimSpace(it.Quantity); raw != "" {
		qty, err := importer.ParseDecimal(strings.TrimRight(raw, "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"))
		if err == nil {
			m.Quantity = qty
			if m.Unit == "" {
				m.Unit = strings.TrimLeft(raw, "0123456789.,")
			}
		}
	}
	if raw := strings.TrimSpace(it.Price); raw != "" {
		price, err := importer.ParseDecimal(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid price: %q", raw)
		}
		m.Price = &price
	}
	return m, nil
}
