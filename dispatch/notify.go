package dispatch

import (
	"github.com/Sidd545-cr/zmail/logging"
	"github.com/Sidd545-cr/zmail/wire"
)

// NotificationHandler receives the opaque out-of-band payload a reply may
// carry. The dispatcher does not interpret the payload; shape is
// service-defined. The handler runs on the goroutine completing the call, so
// it should hand heavy work off rather than block outcome delivery.
type NotificationHandler func(n wire.Notification)

// notifyRelay forwards reply notifications to the single registered handler.
// It keeps no state: each completed call independently triggers at most one
// invocation. Notifications are not queued or deduplicated.
type notifyRelay struct {
	handler NotificationHandler
	logger  logging.Logger
}

func (r *notifyRelay) dispatch(n wire.Notification) {
	if len(n) == 0 {
		return
	}
	if r.handler == nil {
		r.logger.Debug("notification dropped, no handler registered", "bytes", len(n))
		return
	}
	r.handler(n)
}
