package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"platedepot/internal/core/entity"
	"platedepot/internal/core/id"
)

type MockCatalog struct {
	entity.BaseCatalog
	Code  string `db:"code" json:"code"`
	Name  string `db:"name" json:"name"`
	Notes string `db:"-" json:"notes"`
}

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[MockCatalog]()

	expectedCols := []string{
		"id", "deletion_mark", "version", "attributes", "code", "name",
	}

	for _, expected := range expectedCols {
		assert.Contains(t, cols, expected)
	}
	assert.NotContains(t, cols, "-")
}

func TestStructToMap(t *testing.T) {
	cat := MockCatalog{
		BaseCatalog: entity.BaseCatalog{
			BaseEntity: entity.BaseEntity{
				ID:           id.New(),
				DeletionMark: true,
				Version:      5,
			},
		},
		Code:  "CL-001",
		Name:  "Sharma Construction",
		Notes: "ignored",
	}

	m := StructToMap(cat)

	assert.Equal(t, cat.ID, m["id"])
	assert.Equal(t, true, m["deletion_mark"])
	assert.Equal(t, 5, m["version"])
	assert.Equal(t, "CL-001", m["code"])
	assert.Equal(t, "Sharma Construction", m["name"])
	assert.NotContains(t, m, "-")
	assert.NotContains(t, m, "notes")
}

func TestStructToMap_Pointer(t *testing.T) {
	cat := &MockCatalog{Code: "X"}
	m := StructToMap(cat)
	assert.Equal(t, "X", m["code"])
}
