package memory

import (
	"time"

	"focusforge-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// SessionRegistry holds the active ritual sessions. Sessions that never get
// feedback fall out after the TTL; the durable session memory row remains.
type SessionRegistry struct {
	cache *cache.Cache
}

func NewSessionRegistry(ttl, purgeEvery time.Duration) *SessionRegistry {
	return &SessionRegistry{
		cache: cache.New(ttl, purgeEvery),
	}
}

// Add registers a new session. Returns false when the id is already
// registered; the underlying cache.Add is atomic, so two racing registrations
// cannot both succeed.
func (r *SessionRegistry) Add(sessionID string, session *store.RitualSession) bool {
	return r.cache.Add(sessionID, session, cache.DefaultExpiration) == nil
}

func (r *SessionRegistry) Get(sessionID string) (*store.RitualSession, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.RitualSession), true
	}
	return nil, false
}

func (r *SessionRegistry) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}

// Count returns the number of live sessions, for diagnostics.
func (r *SessionRegistry) Count() int {
	return r.cache.ItemCount()
}
