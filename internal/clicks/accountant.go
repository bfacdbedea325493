package clicks

import (
	"context"

	"github.com/serroba/shortlink-go/internal/shortener"
	"go.uber.org/zap"
)

// Accountant applies click events to the persistent store.
type Accountant struct {
	repo   shortener.Repository
	logger *zap.Logger
}

// NewAccountant creates a click accountant over repo.
func NewAccountant(repo shortener.Repository, logger *zap.Logger) *Accountant {
	return &Accountant{
		repo:   repo,
		logger: logger,
	}
}

// Handle increments the click counter and last-access time for the event's
// code. Unknown codes are dropped: the record may have been deactivated
// between the redirect and the increment.
func (a *Accountant) Handle(ctx context.Context, event *Event) error {
	err := a.repo.RegisterClick(ctx, shortener.Code(event.Code), event.AccessedAt)
	if err != nil {
		a.logger.Warn("failed to register click",
			zap.String("code", event.Code),
			zap.Error(err),
		)

		return err
	}

	a.logger.Debug("registered click", zap.String("code", event.Code))

	return nil
}
