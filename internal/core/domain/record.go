package domain

// Record is one identity in the credential store: a username, the one-way
// digest of its password, and the currently active bearer token.
//
// A record is created exactly once, on the first successful login for a
// username not yet present. After that only Token changes: it is replaced,
// never appended, on every subsequent successful login. HashedPassword is
// immutable for the lifetime of the record.
type Record struct {
	Username       string `json:"username"`
	HashedPassword string `json:"hashed_password"`
	Token          string `json:"token"`
}
