package database

import _ "embed"

// Schema is the engine's forward-only SQL schema, embedded at build time.
// New installations run it in full; existing ones re-run it on every
// startup (all statements are idempotent) so missing tables/indexes are
// added without a separate migration runner.
//
//go:embed schema.sql
var Schema string
