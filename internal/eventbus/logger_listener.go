package eventbus

import (
	"context"

	"github.com/annel0/isotiles/internal/logging"
)

// StartLoggingListener подписывается на все события и пишет их в лог.
// verbose() опрашивается на каждое событие: при true запись идёт в INFO, иначе в DEBUG.
func StartLoggingListener(bus EventBus, verbose func() bool) (Subscription, error) {
	log := logging.Component("events")
	s, err := bus.Subscribe(context.Background(), Filter{}, func(ctx context.Context, ev *Envelope) {
		if verbose != nil && verbose() {
			log.Info("[%d] %s src=%s %v", ev.Frame, ev.EventType, ev.Source, ev.Payload)
			return
		}
		log.Debug("[%d] %s %s src=%s %v", ev.Frame, ev.ID, ev.EventType, ev.Source, ev.Payload)
	})
	if err != nil {
		return nil, err
	}
	log.Debug("LoggingListener: подписка на все события активирована")
	return s, nil
}
