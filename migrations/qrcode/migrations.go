// Package qrcode embeds the goose migrations for the qrcode schema.
package qrcode

import "embed"

//go:embed *.sql
var MigrationsFS embed.FS
