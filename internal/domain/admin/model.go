package admin

// User is one admin credential. PasswordHash is always a bcrypt hash;
// plaintext never reaches the store.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
}
