package migrations

import "embed"

// FS contains embedded SQLite migrations for game record storage.
//
//go:embed *.sql
var FS embed.FS
