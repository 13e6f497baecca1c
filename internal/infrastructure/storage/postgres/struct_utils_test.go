package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MASITH-developpement/Azalscore-sub000/internal/core/id"
	"github.com/MASITH-developpement/Azalscore-sub000/internal/domain/catalogs/customer"
	"github.com/MASITH-developpement/Azalscore-sub000/internal/domain/documents/commercial"
)

func TestExtractDBColumns_Customer(t *testing.T) {
	cols := ExtractDBColumns[customer.Customer]()

	// Embedded entity.Catalog fields
	assert.Contains(t, cols, "id")
	assert.Contains(t, cols, "deletion_mark")
	assert.Contains(t, cols, "version")
	assert.Contains(t, cols, "code")
	assert.Contains(t, cols, "name")

	// Own fields
	assert.Contains(t, cols, "email")
	assert.Contains(t, cols, "vat_number")
	assert.Contains(t, cols, "billing_address")
}

func TestExtractDBColumns_CommercialDocument(t *testing.T) {
	cols := ExtractDBColumns[commercial.Document]()

	assert.Contains(t, cols, "number")
	assert.Contains(t, cols, "date")
	assert.Contains(t, cols, "type")
	assert.Contains(t, cols, "status")
	assert.Contains(t, cols, "customer_id")
	assert.Contains(t, cols, "subtotal")
	assert.Contains(t, cols, "discount_amount")
	assert.Contains(t, cols, "tax_amount")
	assert.Contains(t, cols, "total")
	assert.Contains(t, cols, "parent_id")

	// Lines and children are stored in separate tables, not columns.
	assert.NotContains(t, cols, "-")
	for _, col := range cols {
		assert.NotEmpty(t, col)
	}
}

func TestStructToMap(t *testing.T) {
	c := customer.NewCustomer("CUS-00001", "Acme SARL")
	email := "billing@acme.example"
	c.Email = &email

	m := StructToMap(c)
	require.NotNil(t, m)

	assert.Equal(t, "CUS-00001", m["code"])
	assert.Equal(t, "Acme SARL", m["name"])
	assert.Equal(t, &email, m["email"])
	assert.Equal(t, c.ID, m["id"])

	// Second call exercises the metadata cache.
	m2 := StructToMap(c)
	assert.Equal(t, m, m2)
}

func TestStructToMap_SkipsIgnoredFields(t *testing.T) {
	doc := commercial.NewDocument(commercial.TypeQuote, id.New())

	m := StructToMap(doc)
	require.NotNil(t, m)

	assert.Equal(t, string(commercial.TypeQuote), string(m["type"].(commercial.DocumentType)))

	// db:"-" fields must not leak into the column map.
	_, hasLines := m["lines"]
	assert.False(t, hasLines)
}
