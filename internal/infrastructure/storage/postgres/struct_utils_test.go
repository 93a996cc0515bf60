package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stratum/internal/core/entity"
	"stratum/internal/core/id"
)

type mockEntity struct {
	entity.IntegratedEntity
	Code string `db:"code" json:"code"`
	Name string `db:"name" json:"name"`
}

func TestExtractDBColumns_ArchiveFields(t *testing.T) {
	cols := ExtractDBColumns[mockEntity]()

	expectedCols := []string{
		"id", "version", "attributes", "archived", "archive_points",
		"updated", "created", "code", "name",
	}

	for _, expected := range expectedCols {
		assert.Contains(t, cols, expected)
	}

	// Runtime-only fields carry "-" tags and never become columns.
	assert.NotContains(t, cols, "-")
}

func TestStructToMap_ArchiveFields(t *testing.T) {
	e := mockEntity{Code: "TEST", Name: "Test Name"}
	e.ID = id.New()
	e.Version = 5
	e.Archived = true
	e.ArchivePoints = []string{"company"}

	m := StructToMap(e)

	assert.Equal(t, e.ID, m["id"])
	assert.Equal(t, 5, m["version"])
	assert.Equal(t, true, m["archived"])
	assert.Equal(t, []string{"company"}, m["archive_points"])
	assert.Equal(t, "TEST", m["code"])
	assert.Equal(t, "Test Name", m["name"])

	// History tracker and runtime flags must not leak into storage.
	assert.NotContains(t, m, "-")
}
