// Package musclemap holds assets embedded into the musclemap binaries.
package musclemap

import "embed"

// MigrationsFS holds the PostgreSQL schema migrations.
//
//go:embed migrations/*.sql
var MigrationsFS embed.FS
