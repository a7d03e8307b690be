// Package migrations embeds SQL migration files for the SQLite store.
package migrations

import "embed"

// FS holds the ledger schema migrations, applied in file-name order.
//
//go:embed *.sql
var FS embed.FS
