package auth

import "crypto/subtle"

// Credentials is the single admin login.
type Credentials struct {
	User     string
	Password string
}

// Match reports whether user and password equal the configured pair.
// Both comparisons always run so timing does not reveal which one failed.
func (c Credentials) Match(user, password string) bool {
	if c.User == "" || c.Password == "" {
		return false
	}
	u := subtle.ConstantTimeCompare([]byte(user), []byte(c.User))
	p := subtle.ConstantTimeCompare([]byte(password), []byte(c.Password))
	return u&p == 1
}

// Map returns the pair in the shape chi's BasicAuth middleware expects.
func (c Credentials) Map() map[string]string {
	return map[string]string{c.User: c.Password}
}
