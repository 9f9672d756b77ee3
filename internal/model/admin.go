// Package model defines the documents stored by the site and the form inputs
// used to create them. Field tags serve three encoders: json for API
// responses, bson for the MongoDB store, and validate for input checking.
package model

import "strings"

// RoleAdmin is the role claim carried by an authenticated session.
const RoleAdmin = "Admin"

// Admin is an account allowed into the dashboard. Password holds either a
// bcrypt hash or, for rows created before hashing was introduced, the
// plaintext value.
type Admin struct {
	ID       string `json:"id"       bson:"_id,omitempty"`
	Username string `json:"username" bson:"Username"`
	Password string `json:"-"        bson:"Password"`
}

// PasswordIsHashed reports whether the stored password is a bcrypt hash.
func (a *Admin) PasswordIsHashed() bool {
	return strings.HasPrefix(a.Password, "$2a$") ||
		strings.HasPrefix(a.Password, "$2b$") ||
		strings.HasPrefix(a.Password, "$2y$")
}
