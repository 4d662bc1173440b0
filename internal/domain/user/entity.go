package user

// User represents a user account record.
type User struct {
	ID           int64    // ID is the unique identifier assigned by the repository
	Name         string   // Name is the unique account name, matched case-sensitively
	UserType     UserType // UserType is the account role
	PasswordHash string   // PasswordHash is the bcrypt digest of the password; never the plaintext
}
