package user

// UserType is the account role. The full domain is wider than the set of roles
// accepted on writes: ADMIN exists for filtering and future use but cannot be
// assigned through Create or Update.
type UserType string

// Full user type domain.
const (
	TypeSupplier UserType = "SUPPLIER"
	TypeRetailer UserType = "RETAILER"
	TypeAdmin    UserType = "ADMIN"
)

// allTypes is the full tagged domain.
var allTypes = map[UserType]struct{}{
	TypeSupplier: {},
	TypeRetailer: {},
	TypeAdmin:    {},
}

// writableTypes is the allowed-role subset for write operations.
var writableTypes = map[UserType]struct{}{
	TypeSupplier: {},
	TypeRetailer: {},
}

// ValidType reports whether t is a member of the full user type domain.
func ValidType(t UserType) bool {
	_, ok := allTypes[t]
	return ok
}

// WritableType reports whether t may be assigned on Create or Update.
func WritableType(t UserType) bool {
	_, ok := writableTypes[t]
	return ok
}
