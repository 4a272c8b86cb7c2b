// Package migrations embeds the SQL migration files so the binary can
// bootstrap a fresh database without external assets.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
