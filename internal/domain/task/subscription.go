package task

import "sync"

// Subscription delivers task list snapshots for one scope. Each mutation in
// scope produces a fresh snapshot on C. Subscribers that stop reading only
// miss intermediate snapshots; the latest state always gets through because
// a full snapshot supersedes anything dropped before it.
type Subscription struct {
	// C receives the task list for the scope after every in-scope change.
	C chan []Task

	id     int64
	tenant string
	scope  Scope
	hub    *hub
}

// Unsubscribe detaches the subscription. It must be called when the active
// project or tab changes, or stale subscriptions accumulate and deliver
// duplicate lists.
func (s *Subscription) Unsubscribe() {
	s.hub.remove(s.id)
}

// hub tracks live subscriptions for a task service.
type hub struct {
	mu     sync.Mutex
	nextID int64
	subs   map[int64]*Subscription
}

func newHub() *hub {
	return &hub{subs: map[int64]*Subscription{}}
}

func (h *hub) add(tenantID string, scope Scope) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	sub := &Subscription{
		C:      make(chan []Task, 8),
		id:     h.nextID,
		tenant: tenantID,
		scope:  scope,
		hub:    h,
	}
	h.subs[sub.id] = sub
	return sub
}

func (h *hub) remove(id int64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if sub, ok := h.subs[id]; ok {
		delete(h.subs, id)
		close(sub.C)
	}
}

// affected returns the subscriptions watching the given tenant and project.
func (h *hub) affected(tenantID, projectID string) []*Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	var out []*Subscription
	for _, sub := range h.subs {
		if sub.tenant == tenantID && sub.scope.matches(projectID) {
			out = append(out, sub)
		}
	}
	return out
}

// deliver pushes a snapshot to one subscription without blocking; when the
// buffer is full the oldest snapshot is dropped in favor of the new one.
// Holding the lock here means a concurrent Unsubscribe can never close the
// channel mid-send.
func (h *hub) deliver(id int64, tasks []Task) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sub, ok := h.subs[id]
	if !ok {
		return
	}
	for {
		select {
		case sub.C <- tasks:
			return
		default:
			select {
			case <-sub.C:
			default:
			}
		}
	}
}
