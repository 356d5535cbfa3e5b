package academicengine

import "embed"

//go:embed migrations
var MigrationsFS embed.FS
