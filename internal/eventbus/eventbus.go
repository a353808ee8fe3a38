package eventbus

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Типы событий демо
const (
	AgentMoved    = "agent.moved"
	AgentBlocked  = "agent.blocked"
	ViewChanged   = "view.changed"
	OptionToggled = "option.toggled"
)

// Envelope описывает универсальный контейнер события.
type Envelope struct {
	ID        string    // Уникальный идентификатор (UUID).
	Timestamp time.Time // Время создания события (UTC).
	Source    string    // Имя компонента-источника.
	EventType string    // Тип события (agent.moved, view.changed…).
	Frame     int       // Номер кадра, на котором событие возникло.
	Payload   any       // Полезная нагрузка, тип определяется EventType.
}

// NewEnvelope создаёт событие с новым UUID и текущим временем
func NewEnvelope(source, eventType string, frame int, payload any) *Envelope {
	return &Envelope{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Source:    source,
		EventType: eventType,
		Frame:     frame,
		Payload:   payload,
	}
}

// Filter позволяет подписаться только на нужные события.
type Filter struct {
	Types   []string // Если пусто - все типы.
	Sources []string // Если пусто - все источники.
}

// Subscription возвращается при подписке; позволяет отписаться.
type Subscription interface {
	Unsubscribe()
}

// Handler потребляет события.
type Handler func(ctx context.Context, ev *Envelope)

// Stats агрегированные метрики шины.
type Stats struct {
	Published uint64
	Consumed  uint64
}

// EventBus определяет абстракцию шины событий.
type EventBus interface {
	Publish(ctx context.Context, ev *Envelope) error
	Subscribe(ctx context.Context, f Filter, h Handler) (Subscription, error)
	Metrics() Stats
}

//================ Synchronous implementation =================//

// syncBus доставляет события подписчикам прямо в Publish, в порядке подписки.
// Цикл кадров однопоточный, поэтому обработчики выполняются в его потоке.
type syncBus struct {
	mu          sync.Mutex
	subscribers map[int]subscriber
	order       []int
	nextID      int
	stats       Stats
}

type subscriber struct {
	filter  Filter
	handler Handler
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewSyncBus создаёт синхронную in-process шину.
func NewSyncBus() EventBus {
	return &syncBus{subscribers: make(map[int]subscriber)}
}

func (b *syncBus) Publish(ctx context.Context, ev *Envelope) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	b.stats.Published++
	subs := make([]subscriber, 0, len(b.order))
	for _, id := range b.order {
		subs = append(subs, b.subscribers[id])
	}
	b.mu.Unlock()

	for _, sub := range subs {
		if sub.ctx.Err() != nil || !matchFilter(ev, sub.filter) {
			continue
		}
		sub.handler(sub.ctx, ev)
		b.mu.Lock()
		b.stats.Consumed++
		b.mu.Unlock()
	}
	return nil
}

func (b *syncBus) Subscribe(ctx context.Context, f Filter, h Handler) (Subscription, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	cctx, cancel := context.WithCancel(ctx)
	b.subscribers[id] = subscriber{filter: f, handler: h, ctx: cctx, cancel: cancel}
	b.order = append(b.order, id)

	return &sub{bus: b, id: id}, nil
}

func (b *syncBus) Metrics() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stats
}

func matchFilter(ev *Envelope, f Filter) bool {
	match := func(val string, arr []string) bool {
		if len(arr) == 0 {
			return true
		}
		for _, v := range arr {
			if v == val {
				return true
			}
		}
		return false
	}
	return match(ev.EventType, f.Types) && match(ev.Source, f.Sources)
}

type sub struct {
	bus *syncBus
	id  int
}

func (s *sub) Unsubscribe() {
	s.bus.mu.Lock()
	defer s.bus.mu.Unlock()

	if sub, ok := s.bus.subscribers[s.id]; ok {
		sub.cancel()
		delete(s.bus.subscribers, s.id)
		for i, id := range s.bus.order {
			if id == s.id {
				s.bus.order = append(s.bus.order[:i], s.bus.order[i+1:]...)
				break
			}
		}
	}
}
