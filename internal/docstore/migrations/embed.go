// Package migrations embeds the document store schema.
package migrations

import "embed"

// FS contains embedded SQLite migrations for the document store.
//
//go:embed *.sql
var FS embed.FS
