package migration

import "context"

// Migrator prepares the history schema
type Migrator interface {
	Run(ctx context.Context) (created bool, err error)
}
