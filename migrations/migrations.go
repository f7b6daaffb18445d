// Package migrations embeds the versioned schema files for each supported
// database backend.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
