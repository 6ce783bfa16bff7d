//go:generate mockgen -source=contracts.go -destination=orders_mocks_test.go -package=orders_test

package orders

import (
	"context"

	"fleet-scheduler/internal/domain"
)

// SchedulePort is the subset of the scheduling service the processor drives.
type SchedulePort interface {
	AddOrder(ctx context.Context, o domain.UnassignedOrder) (domain.UnassignedOrder, error)
	WithdrawOrder(ctx context.Context, orderRef string) (domain.UnassignedOrder, error)
}
