package browse

import (
	"context"

	"github.com/lumatch/lumatch-backend/internal/domain"
	"go.uber.org/zap"
)

// Notifier delivers the match event to the counterpart. Delivery is
// best-effort: the processor logs and swallows failures so the liking user's
// own confirmation still succeeds.
type Notifier interface {
	NotifyMatch(ctx context.Context, userID int64, counterpart *domain.Profile, contact string) error
}

// LogNotifier records match events in the log. The chat-platform adapter
// plugs in a real sender.
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) NotifyMatch(_ context.Context, userID int64, counterpart *domain.Profile, contact string) error {
	n.log.Info("match notification",
		zap.Int64("user_id", userID),
		zap.Int64("counterpart_user_id", counterpart.UserID),
		zap.String("contact", contact),
	)
	return nil
}
