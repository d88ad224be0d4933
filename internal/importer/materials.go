package importer

// materials.go defines the material catalog import kind. Duplicates are a
// first-class, non-error outcome: a row matching an existing catalog entry
// (or an earlier row of the same batch) on normalized (name, brand) is
// counted separately and never overwrites catalog data at commit.

import (
	"strconv"

	"github.com/sitewise-app/sitewise/internal/masterdata"
)

// Material catalog column names.
const (
	ColProductCode = "Product Code"
	ColBrand       = "Brand"
	ColProductName = "Product Name"
	ColCategory    = "Category"
	ColQuantity    = "Quantity"
	ColUnit        = "Unit"
	ColPrice       = "Price"
)

// Material is one validated catalog row.
type Material struct {
	ProductCode string
	Brand       string
	Name        string
	Category    string
	Quantity    float64
	Unit        string
	Price       *float64
}

func materialsKind() KindDefinition {
	return KindDefinition{
		Info: KindInfo{
			Key:   "materials",
			Label: "Material Catalog",
			Specs: []FieldSpec{
				{Name: ColProductCode},
				{Name: ColBrand, Required: true},
				{Name: ColProductName, Required: true},
				{Name: ColCategory, Required: true},
				{Name: ColQuantity},
				{Name: ColUnit},
				{Name: ColPrice},
			},
		},
		Build:      buildMaterial,
		Duplicates: materialDuplicates{},
		Render:     renderMaterial,
	}
}

func buildMaterial(rec RawRecord, _ *masterdata.Index) (any, *RowError) {
	name := rec.field(ColProductName)
	if name == "" {
		return nil, normErr(rec.Row, ColProductName, "", "missing value")
	}
	brand := rec.field(ColBrand)
	if brand == "" {
		return nil, normErr(rec.Row, ColBrand, "", "missing value")
	}
	category := rec.field(ColCategory)
	if category == "" {
		return nil, normErr(rec.Row, ColCategory, "", "missing value")
	}

	m := &Material{
		ProductCode: rec.field(ColProductCode),
		Brand:       brand,
		Name:        name,
		Category:    category,
		Unit:        rec.field(ColUnit),
	}

	if raw := rec.field(ColQuantity); raw != "" {
		qty, err := ParseDecimal(raw)
		if err != nil {
			return nil, normErr(rec.Row, ColQuantity, raw, "invalid number")
		}
		m.Quantity = qty
	}
	if raw := rec.field(ColPrice); raw != "" {
		price, err := ParseDecimal(raw)
		if err != nil {
			return nil, normErr(rec.Row, ColPrice, raw, "invalid number")
		}
		m.Price = &price
	}

	return m, nil
}

func renderMaterial(entity any) map[string]string {
	m := entity.(*Material)
	out := map[string]string{
		ColProductName: m.Name,
		ColBrand:       m.Brand,
		ColCategory:    m.Category,
	}
	if m.ProductCode != "" {
		out[ColProductCode] = m.ProductCode
	}
	if m.Quantity != 0 {
		out[ColQuantity] = strconv.FormatFloat(m.Quantity, 'f', -1, 64)
	}
	if m.Unit != "" {
		out[ColUnit] = m.Unit
	}
	if m.Price != nil {
		out[ColPrice] = strconv.FormatFloat(*m.Price, 'f', 2, 64)
	}
	return out
}

// materialDuplicates matches on normalized (name, brand), both against the
// existing catalog snapshot and within the running batch.
type materialDuplicates struct{}

func (materialDuplicates) BatchKey(entity any) string {
	m := entity.(*Material)
	return masterdata.MaterialKey(m.Name, m.Brand)
}

func (materialDuplicates) ExistingID(entity any, idx *masterdata.Index) (string, bool) {
	m := entity.(*Material)
	id, ok := idx.MaterialKeys()[masterdata.MaterialKey(m.Name, m.Brand)]
	return id, ok
}

func (materialDuplicates) AttemptedText(entity any) string {
	m := entity.(*Material)
	return m.Name + " / " + m.Brand
}
