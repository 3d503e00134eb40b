// Package storage defines the persistence interfaces for the campaign and
// live-game engine.
//
// Implementations live in subpackages (SQLite under storage/sqlite). The
// engine consumes reference data (tables, catalogs) and reads/writes
// campaign, roster, post-game, and game-session records through these
// interfaces.
//
// # Error Types
//
//   - ErrNotFound: a requested record is missing.
//   - ErrActiveSessionExists: a second active game session was attempted.
package storage
