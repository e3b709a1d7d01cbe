package migrations

import (
	"io/fs"

	gigs "github.com/goliatone/go-gigs"
)

// Importing this package registers the embedded marketplace migrations so
// hosts only need a blank import to pick them up.
func init() {
	coreFS, err := fs.Sub(gigs.GetMigrationsFS(), "data/sql/migrations")
	if err != nil {
		// The embedded layout is fixed at build time; nothing to register
		// when the subtree is absent.
		return
	}
	Register(coreFS)
}
