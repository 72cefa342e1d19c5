package migration

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// IndexOwner is implemented by every repository that owns MongoDB indexes.
type IndexOwner interface {
	EnsureIndexes(ctx context.Context) error
}

// Run creates the indexes of each collection. Creating an index that already
// exists is a no-op, so Run is safe on every boot.
func Run(ctx context.Context, owners map[string]IndexOwner) error {
	for collection, owner := range owners {
		err := owner.EnsureIndexes(ctx)
		if err != nil {
			return fmt.Errorf("ensure indexes for %s: %w", collection, err)
		}
		logrus.Printf("Indexes ready for collection %s", collection)
	}

	logrus.Printf("Applied indexes for %d collections!", len(owners))
	return nil
}
