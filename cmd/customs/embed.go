package customs

import "embed"

//go:embed topics/*.md
var topicsFS embed.FS
