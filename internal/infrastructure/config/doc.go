// Package config loads and validates Hearth Core configuration.
//
// Configuration is read from a YAML file, with selected values overridable
// via HEARTH_-prefixed environment variables. Secrets (JWT signing key,
// admin password, broker credentials) should always come from the
// environment rather than the file.
package config
