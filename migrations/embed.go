// Package migrations embeds the goose SQL migrations so every binary and test
// helper applies the same schema.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
