// Package migrations embeds the SQL migrations so the binaries do not depend
// on the working directory.
package migrations

import "embed"

const PostgresDir = "postgres"

//go:embed postgres/*.sql
var Postgres embed.FS
