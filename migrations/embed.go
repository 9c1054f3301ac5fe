// Package migrations holds the SQLite schema, applied in file-name order by internal/db.
package migrations

import "embed"

//go:embed *.sql
var Files embed.FS
