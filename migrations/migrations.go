// Package migrations embebe los scripts SQL de goose para aplicarlos al arranque.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
