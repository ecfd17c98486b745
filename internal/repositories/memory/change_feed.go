package memory

import (
	"context"
	"sync"

	"github.com/SscSPs/shopdesk_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/shopdesk_backend/internal/core/ports/repositories"
)

// ChangeFeed fans approval changes out to in-process subscribers.
type ChangeFeed struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]func(domain.ChangeEvent)
}

func NewChangeFeed() *ChangeFeed {
	return &ChangeFeed{subs: make(map[int]func(domain.ChangeEvent))}
}

var _ portsrepo.ChangeFeed = (*ChangeFeed)(nil)

// Subscribe registers onChange until the returned func is called or ctx is done.
func (f *ChangeFeed) Subscribe(ctx context.Context, onChange func(domain.ChangeEvent)) (func(), error) {
	f.mu.Lock()
	id := f.nextID
	f.nextID++
	f.subs[id] = onChange
	f.mu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.subs, id)
			f.mu.Unlock()
		})
	}
	go func() {
		<-ctx.Done()
		unsubscribe()
	}()
	return unsubscribe, nil
}

// Publish delivers event to every current subscriber on the caller's goroutine.
func (f *ChangeFeed) Publish(event domain.ChangeEvent) {
	f.mu.RLock()
	subs := make([]func(domain.ChangeEvent), 0, len(f.subs))
	for _, fn := range f.subs {
		subs = append(subs, fn)
	}
	f.mu.RUnlock()

	for _, fn := range subs {
		fn(event)
	}
}
