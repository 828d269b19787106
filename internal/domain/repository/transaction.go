package repository

import "context"

// TransactionManager runs membership and record mutations atomically.
type TransactionManager interface {
	// Execute runs fn in one transaction and commits when fn returns nil.
	// The implementation may rerun fn after a lock conflict, so fn must only
	// touch the store through the factory it is given.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory hands out repositories bound to the running transaction.
type RepositoryFactory interface {
	GroupRepo() GroupRepository
	RecordRepo() RecordRepository
}
