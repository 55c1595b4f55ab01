package version

// Overridden at build time with -ldflags "-X treko/internal/version.VERSION=..."
var (
	VERSION = "dev"
	COMMIT  = "unknown"
)
