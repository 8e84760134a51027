package port

import (
	"context"
	"time"

	"github.com/heyheyboy777/SAD-project/internal/core/domain"
)

type HistorySource interface {
	// DailySales returns one point per day for the `days` days ending on `end`, oldest first
	DailySales(ctx context.Context, item domain.ItemType, end time.Time, days int) ([]domain.SalesPoint, error)
}
