package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidType(t *testing.T) {
	assert.True(t, ValidType(TypeSupplier))
	assert.True(t, ValidType(TypeRetailer))
	assert.True(t, ValidType(TypeAdmin))

	assert.False(t, ValidType("WHOLESALER"))
	assert.False(t, ValidType("supplier")) // case-sensitive
	assert.False(t, ValidType(""))
}

func TestWritableType(t *testing.T) {
	assert.True(t, WritableType(TypeSupplier))
	assert.True(t, WritableType(TypeRetailer))

	// ADMIN is filterable but never assignable
	assert.False(t, WritableType(TypeAdmin))
	assert.False(t, WritableType(""))
}

func TestValidSortOrder(t *testing.T) {
	assert.True(t, ValidSortOrder(SortAsc))
	assert.True(t, ValidSortOrder(SortDesc))

	assert.False(t, ValidSortOrder("ASC"))
	assert.False(t, ValidSortOrder("sideways"))
	assert.False(t, ValidSortOrder(""))
}

func TestSortableField(t *testing.T) {
	for _, field := range []string{"id", "name", "user_type"} {
		assert.True(t, SortableField(field), field)

		col, ok := SortColumn(field)
		assert.True(t, ok)
		assert.NotEmpty(t, col)
	}

	assert.False(t, SortableField("password_hash"))
	assert.False(t, SortableField("created_at"))
	assert.False(t, SortableField(""))
}
