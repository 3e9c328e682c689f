// Package migrations carries the versioned schema applied by the migration runner.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
