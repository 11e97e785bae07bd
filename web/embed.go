package web

import "embed"

// Templates embeds HTML page shells.
//
//go:embed templates/*.html
var Templates embed.FS
