package user

// SortOrder is the direction applied to a sorted listing.
type SortOrder string

const (
	// SortAsc sorts ascending.
	SortAsc SortOrder = "asc"
	// SortDesc sorts descending.
	SortDesc SortOrder = "desc"
)

// ValidSortOrder reports whether o is a recognized sort direction.
func ValidSortOrder(o SortOrder) bool {
	return o == SortAsc || o == SortDesc
}

// sortableFields maps accepted sort field names to their storage columns.
// Sorting by the password hash is deliberately not offered.
var sortableFields = map[string]string{
	"id":        "id",
	"name":      "name",
	"user_type": "user_type",
}

// SortableField reports whether field names a column the listing may sort by.
func SortableField(field string) bool {
	_, ok := sortableFields[field]
	return ok
}

// SortColumn returns the storage column for an accepted sort field.
func SortColumn(field string) (string, bool) {
	col, ok := sortableFields[field]
	return col, ok
}

// ListQuery carries the filter, sort and pagination parameters of a listing.
// Zero Take means no limit. OrderBy and Order only take effect together;
// either one alone leaves the repository ordering in place.
type ListQuery struct {
	Skip     int64
	Take     int64
	UserType UserType // optional equality filter; empty means no filter
	OrderBy  string   // optional sort field
	Order    SortOrder
}
