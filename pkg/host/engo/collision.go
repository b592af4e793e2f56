// pkg/host/engo/collision.go
package engo

import (
	"sync"

	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-monowheel/pkg/event"
)

// CollisionMessage is dispatched on an engo mailbox when the vehicle body
// hits something.
type CollisionMessage struct {
	Speed float64
}

// Type implements engo.Message.
func (CollisionMessage) Type() string { return "monowheel.CollisionMessage" }

// CollisionBridge republishes collision messages as event.CollisionEvent.
type CollisionBridge struct {
	mailbox *engo.MessageManager
	bus     *event.Bus
	source  interface{}

	mu     sync.Mutex
	id     engo.MessageHandlerId
	closed bool
}

// NewCollisionBridge starts listening on mailbox.
func NewCollisionBridge(mailbox *engo.MessageManager, bus *event.Bus, source interface{}) *CollisionBridge {
	b := &CollisionBridge{mailbox: mailbox, bus: bus, source: source}
	b.id = mailbox.Listen(CollisionMessage{}.Type(), b.forward)
	return b
}

func (b *CollisionBridge) forward(msg engo.Message) {
	b.mu.Lock()
	closed := b.closed
	b.mu.Unlock()
	if closed {
		return
	}

	switch m := msg.(type) {
	case CollisionMessage:
		b.bus.Publish(event.NewCollisionEvent(b.source, m.Speed))
	case *CollisionMessage:
		b.bus.Publish(event.NewCollisionEvent(b.source, m.Speed))
	}
}

// Close stops forwarding. It is idempotent.
func (b *CollisionBridge) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	b.mailbox.StopListen(CollisionMessage{}.Type(), b.id)
}
