package migrations

import "embed"

// FS contains embedded SQLite migrations for dailies storage.
//
//go:embed *.sql
var FS embed.FS
