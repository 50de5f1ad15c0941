package mediagrab

import "embed"

// MigrationsFS holds the SQL migrations for the download journal.
//
//go:embed migrations/*.sql
var MigrationsFS embed.FS
