// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
)

// Aggregate names used in change notifications.
const (
	AggregateBillRule = "bill_rule"
	AggregateBill     = "bill"
	AggregateCategory = "category"
)

// ChangeNotifier publishes a notification after a mutation has been
// committed so dependent views can refresh. The contract is one
// notification per committed mutation, not per sub-step; implementations
// must never fail the mutation.
type ChangeNotifier interface {
	NotifyChanged(ctx context.Context, aggregate string, id uuid.UUID)
}
