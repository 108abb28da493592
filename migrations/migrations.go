// Package migrations embeds the SQL schema. Every file is idempotent and runs
// in name order on both Postgres and SQLite.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
