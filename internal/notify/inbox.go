package notify

import (
	"context"
	"sync"

	"github.com/fadilmartias/fairfound-coach/internal/logger"
	"github.com/fadilmartias/fairfound-coach/internal/model"
)

const maxPerSession = 50

// Inbox keeps the most recent notifications per session in memory, newest first.
type Inbox struct {
	mu    sync.RWMutex
	items map[string][]model.Notification
	log   logger.Logger
}

func NewInbox(log logger.Logger) *Inbox {
	return &Inbox{items: make(map[string][]model.Notification), log: log}
}

func (i *Inbox) Notify(ctx context.Context, sessionID string, n model.Notification) {
	i.mu.Lock()
	list := append([]model.Notification{n}, i.items[sessionID]...)
	if len(list) > maxPerSession {
		list = list[:maxPerSession]
	}
	i.items[sessionID] = list
	i.mu.Unlock()

	i.log.Debug("notification queued", logger.Fields{"session_id": sessionID, "title": n.Title, "type": n.Type})
}

func (i *Inbox) List(sessionID string) []model.Notification {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return append([]model.Notification{}, i.items[sessionID]...)
}

// MarkAllRead flags every notification of the session as read.
func (i *Inbox) MarkAllRead(sessionID string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	for idx := range i.items[sessionID] {
		i.items[sessionID][idx].Read = true
	}
}
