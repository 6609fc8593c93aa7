// Package schema embeds the SQL migration files.
package schema

import "embed"

//go:embed pgmigrations/*.sql
var MigrationsFS embed.FS
