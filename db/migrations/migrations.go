// Package migrations embeds the goose migrations for the portal's own tables.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
