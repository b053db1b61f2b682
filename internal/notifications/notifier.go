// Package notifications carries outcome signals from the domain services to
// whatever surface renders them. The core never renders anything itself.
package notifications

import (
	"context"

	"github.com/gamingtechpro/storefront-backend/pkg/enums"
	"github.com/gamingtechpro/storefront-backend/pkg/logger"
)

// Notifier receives outcome messages such as "item added" or "order failed".
type Notifier interface {
	Notify(ctx context.Context, message string, severity enums.Severity)
}

// LogNotifier writes notifications to the structured log. It stands in for
// the UI collaborator in headless deployments.
type LogNotifier struct {
	logg *logger.Logger
}

// NewLogNotifier wires a notifier onto the service logger.
func NewLogNotifier(logg *logger.Logger) *LogNotifier {
	return &LogNotifier{logg: logg}
}

func (n *LogNotifier) Notify(ctx context.Context, message string, severity enums.Severity) {
	if n == nil || n.logg == nil {
		return
	}
	ctx = n.logg.WithFields(ctx, map[string]any{"severity": severity.String()})
	switch severity {
	case enums.SeverityError:
		n.logg.Warn(ctx, message)
	default:
		n.logg.Info(ctx, message)
	}
}

// Noop discards all notifications.
type Noop struct{}

func (Noop) Notify(ctx context.Context, message string, severity enums.Severity) {}
