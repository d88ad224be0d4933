package ocr

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitewise-app/sitewise/internal/importer"
)

type fakeWriter struct {
	inserted []any
	failOn   map[int]bool // fail the nth insert attempt (1-based)
	attempts int
}

func (f *fakeWriter) Insert(_ context.Context, _ string, entity any) error {
	f.attempts++
	if f.failOn[f.attempts] {
		return errors.New("duplicate key value violates unique constraint")
	}
	f.inserted = append(f.inserted, entity)
	return nil
}

func stagedItems() []StagedItem {
	return []StagedItem{
		{ProductCode: "ARV225A", Name: "Pittura Bianca", Brand: "ColorCasa", Category: "Vernici", Quantity: "14L", Price: "12,50"},
		{Name: "Rullo Antigoccia", Brand: "ColorCasa", Category: "Attrezzi", Quantity: "2pz"},
		{Name: "Stucco Rapido", Brand: "EdilPro", Category: "Stucchi"},
	}
}

func TestReviewSaveAll(t *testing.T) {
	w := &fakeWriter{}
	r := NewReview(w, slog.Default())

	res := r.Save(context.Background(), stagedItems())

	assert.Equal(t, 3, res.SavedCount)
	assert.Zero(t, res.ErrorCount)
	assert.Empty(t, res.Errors)
	require.Len(t, w.inserted, 3)

	m := w.inserted[0].(*importer.Material)
	assert.Equal(t, "ARV225A", m.ProductCode)
	assert.InDelta(t, 14.0, m.Quantity, 1e-9)
	assert.Equal(t, "L", m.Unit)
	require.NotNil(t, m.Price)
	assert.InDelta(t, 12.5, *m.Price, 1e-9)
}

func TestReviewSavePartialFailure(t *testing.T) {
	w := &fakeWriter{failOn: map[int]bool{2: true}}
	r := NewReview(w, slog.Default())

	res := r.Save(context.Background(), stagedItems())

	// Item 2's insert fails; items 1 and 3 are still saved.
	assert.Equal(t, 2, res.SavedCount)
	assert.Equal(t, 1, res.ErrorCount)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, 2, res.Errors[0].Item)
	assert.Len(t, w.inserted, 2)
}

func TestReviewSaveRejectsBlankName(t *testing.T) {
	w := &fakeWriter{}
	r := NewReview(w, slog.Default())

	res := r.Save(context.Background(), []StagedItem{
		{Name: "   ", Brand: "ColorCasa"},
		{Name: "Stucco Rapido", Brand: "EdilPro", Category: "Stucchi"},
	})

	assert.Equal(t, 1, res.SavedCount)
	assert.Equal(t, 1, res.ErrorCount)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, 1, res.Errors[0].Item)
	assert.Contains(t, res.Errors[0].Message, "product name")
	assert.Equal(t, 1, w.attempts) // no write attempted for the bad item
}

func TestReviewSaveInvalidPrice(t *testing.T) {
	w := &fakeWriter{}
	r := NewReview(w, slog.Default())

	res := r.Save(context.Background(), []StagedItem{
		{Name: "Pittura Bianca", Brand: "ColorCasa", Category: "Vernici", Price: "dodici"},
	})

	assert.Zero(t, res.SavedCount)
	assert.Equal(t, 1, res.ErrorCount)
	assert.Contains(t, res.Errors[0].Message, "invalid price")
}
