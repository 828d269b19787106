// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"time"

	"mirror/internal/domain/repository"
	"mirror/internal/errors"

	"github.com/cenkalti/backoff/v5"
	"gorm.io/gorm"
)

const (
	maxTxAttempts    = 3
	txRetryBaseDelay = 20 * time.Millisecond
	txRetryMaxDelay  = 200 * time.Millisecond
)

// gormTransactionManager implements the domain's TransactionManager interface using GORM.
type gormTransactionManager struct {
	db *gorm.DB
}

// gormRepositoryFactory hands out repositories bound to one transaction.
type gormRepositoryFactory struct {
	tx *gorm.DB
}

// GroupRepo creates a new group repository instance bound to the transaction.
func (f *gormRepositoryFactory) GroupRepo() repository.GroupRepository {
	return NewGroupRepository(f.tx)
}

// RecordRepo creates a new record repository instance bound to the transaction.
func (f *gormRepositoryFactory) RecordRepo() repository.RecordRepository {
	return NewRecordRepository(f.tx)
}

// NewTransactionManager is the constructor for gormTransactionManager.
func NewTransactionManager(db *gorm.DB) repository.TransactionManager {
	return &gormTransactionManager{db: db}
}

// Execute runs fn in a transaction. Concurrent pairings of the same group
// serialize on the group row lock; a deadlock or serialization failure reruns
// fn from the start, so fn must not have side effects outside the transaction.
func (tm *gormTransactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	retry := backoff.NewExponentialBackOff()
	retry.InitialInterval = txRetryBaseDelay
	retry.MaxInterval = txRetryMaxDelay

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		err := tm.execOnce(ctx, fn)
		if err != nil && !isRetryableTxError(err) {
			return struct{}{}, backoff.Permanent(err)
		}

		return struct{}{}, err
	}, backoff.WithBackOff(retry), backoff.WithMaxTries(maxTxAttempts))

	return err
}

func (tm *gormTransactionManager) execOnce(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	tx := tm.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return errors.Wrap(tx.Error, "failed to begin transaction")
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(&gormRepositoryFactory{tx: tx}); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			return errors.Wrapf(err, "transaction rollback failed: %v", rbErr)
		}

		return err
	}

	if err := tx.Commit().Error; err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}

	return nil
}
