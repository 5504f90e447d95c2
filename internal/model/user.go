package model

// Roles carried in the token's role claim.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is an account held by the users service.  Users are created on
// signup and never updated or deleted afterwards.
//
// Fields:
//
//	ID           - monotonic identifier assigned by the store.
//	Email        - unique key, normalised to lower case.
//	PasswordHash - bcrypt hash; never serialised.
//	Name         - display name.
//	Role         - RoleUser or RoleAdmin.
type User struct {
	ID           uint64 `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`
	Role         string `json:"role"`
}

// NormalizeRole maps anything other than RoleAdmin to RoleUser.
func NormalizeRole(r string) string {
	if r == RoleAdmin {
		return RoleAdmin
	}
	return RoleUser
}
