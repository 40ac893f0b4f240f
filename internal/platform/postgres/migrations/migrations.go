// Package migrations embeds the schema migrations alongside the store
// implementations they serve. The server applies them on startup and the
// test harness applies them to integration databases, both through goose.
// The package carries no other dependencies so test helpers can import it
// without pulling in the stores themselves.
package migrations

import "embed"

// FS holds the goose migration files, rooted at this directory.
//
//go:embed *.sql
var FS embed.FS
