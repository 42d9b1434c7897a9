package simpletxmanager

import (
	"context"
	"database/sql"

	"github.com/m04kA/SMC-CoachingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CoachingService/pkg/txmanager"
)

// sqlBeginner адаптирует *sql.DB к txmanager.Beginner (без метрик)
type sqlBeginner struct {
	db *sql.DB
}

func (b sqlBeginner) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	tx, err := b.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &dbmetrics.SqlTxWrapper{Tx: tx}, nil
}

// NewTransactionManager создает менеджер транзакций поверх *sql.DB
// Используется, когда метрики выключены
func NewTransactionManager(db *sql.DB, opts ...txmanager.Option) *txmanager.TransactionManager {
	return txmanager.NewTransactionManager(sqlBeginner{db: db}, opts...)
}
