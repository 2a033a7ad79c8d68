// Package auth provides password hashing, JWT access tokens and the
// user account store.
//
// Passwords are hashed with Argon2id and stored in PHC string format.
// Access tokens are HS256-signed JWTs validated by signature and expiry
// alone, so request handling never touches the database. The first boot
// seeds a single admin account from configuration.
package auth
