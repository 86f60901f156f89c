// Package migrations embeds the SQL schema migrations for every supported database driver.
package migrations

import "embed"

// FS holds one directory of golang-migrate files per dialect: sqlite, postgresql and mysql.
//
//go:embed sqlite/*.sql postgresql/*.sql mysql/*.sql
var FS embed.FS
