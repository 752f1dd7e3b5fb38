package userrepo

// User is a queryable user record. Email is optional; empty means not set.
type User struct {
	ID    string `json:"id" yaml:"id" db:"user_id"`
	Name  string `json:"name" yaml:"name" db:"name"`
	Email string `json:"email,omitempty" yaml:"email,omitempty" db:"email"`
}

// HasEmail reports whether the optional email attribute is set.
func (u User) HasEmail() bool {
	return u.Email != ""
}
