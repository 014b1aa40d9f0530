// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/billfold/backend/internal/domain/entity"
)

// TransactionRepository persists payment transactions recorded when bills
// are settled.
type TransactionRepository interface {
	// Create creates a new payment transaction in the database.
	Create(ctx context.Context, transaction *entity.Transaction) error
}
