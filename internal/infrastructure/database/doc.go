// Package database manages the SQLite connection and schema migrations
// for Hearth Core.
//
// SQLite is used as the single persistent store: device inventory,
// automation rules, and user accounts all live in one file. The package
// configures WAL mode and a busy timeout for well-behaved concurrent
// access, and applies embedded SQL migrations at startup.
package database
