// Package migrations embeds the SQL schema for the local cache database.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
