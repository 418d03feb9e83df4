package appfs

import "embed"

// FS holds the static files shipped with the application binary:
// SQL migrations and email templates.
//go:embed migrations all:assets
var FS embed.FS
