package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dukapos/internal/core/entity"
	"dukapos/internal/core/types"
)

type testCatalog struct {
	entity.Catalog
	SKU      string      `db:"sku" json:"sku"`
	Price    types.Money `db:"price" json:"price"`
	Internal string      `db:"-" json:"-"`
	NoTag    string
}

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[testCatalog]()

	expected := []string{
		"id", "version", "created_at", "updated_at",
		"name", "is_active", "created_by", "updated_by",
		"sku", "price",
	}
	for _, col := range expected {
		assert.Contains(t, cols, col)
	}
	assert.NotContains(t, cols, "-")
	assert.Len(t, cols, len(expected))
}

func TestStructToMap(t *testing.T) {
	cat := testCatalog{
		Catalog:  entity.NewCatalog("Test Item"),
		SKU:      "SKU-1",
		Price:    types.MustMoney("99.90"),
		Internal: "hidden",
		NoTag:    "hidden",
	}
	cat.Version = 3

	m := StructToMap(cat)

	assert.Equal(t, cat.ID, m["id"])
	assert.Equal(t, 3, m["version"])
	assert.Equal(t, "Test Item", m["name"])
	assert.Equal(t, true, m["is_active"])
	assert.Equal(t, "SKU-1", m["sku"])
	assert.NotContains(t, m, "Internal")
	assert.NotContains(t, m, "NoTag")
}

func TestStructToMap_Pointer(t *testing.T) {
	cat := &testCatalog{Catalog: entity.NewCatalog("Ptr Item")}
	m := StructToMap(cat)
	assert.Equal(t, "Ptr Item", m["name"])
}

func TestStructToMap_NonStruct(t *testing.T) {
	assert.Nil(t, StructToMap(42))
	assert.Nil(t, StructToMap("nope"))
}
