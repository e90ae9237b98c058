// Package migrations embeds the schema of the client storage file.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
