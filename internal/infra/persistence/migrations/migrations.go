// Package migrations embeds the SQL schema migrations applied by goose.
package migrations

import "embed"

// FS holds every migration file, named <version>_<description>.sql.
//
//go:embed *.sql
var FS embed.FS
