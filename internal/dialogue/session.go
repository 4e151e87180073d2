package dialogue

import "sync"

// Scratch holds the answers collected so far for one session.
type Scratch struct {
	EventType  string
	EventValue string
	MetaData   *string
}

type session struct {
	mu      sync.Mutex
	userID  int64
	state   State
	scratch Scratch
	ended   bool
}

// sessionStore maps a user id to its in-progress session. A session is
// removed from the map before its lock is released on a terminal transition,
// so no input can observe stale scratch data.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[int64]*session
}

func newSessionStore() *sessionStore {
	return &sessionStore{sessions: make(map[int64]*session)}
}

// acquire returns the user's live session locked, or nil when none exists.
func (store *sessionStore) acquire(userID int64) *session {
	for {
		store.mu.Lock()
		current := store.sessions[userID]
		store.mu.Unlock()
		if current == nil {
			return nil
		}

		current.mu.Lock()
		if !current.ended {
			return current
		}
		current.mu.Unlock()
	}
}

// begin creates and locks a new session. When one is already live it is
// returned locked with created set to false.
func (store *sessionStore) begin(userID int64) (current *session, created bool) {
	for {
		store.mu.Lock()
		existing := store.sessions[userID]
		if existing == nil {
			fresh := &session{userID: userID, state: StateSelectingType}
			fresh.mu.Lock()
			store.sessions[userID] = fresh
			store.mu.Unlock()
			return fresh, true
		}
		store.mu.Unlock()

		existing.mu.Lock()
		if !existing.ended {
			return existing, false
		}
		existing.mu.Unlock()
	}
}

// end clears the scratch state and drops the session. The caller still
// holds current.mu and must release it.
func (store *sessionStore) end(current *session) {
	current.scratch = Scratch{}
	current.state = StateIdle
	current.ended = true

	store.mu.Lock()
	if store.sessions[current.userID] == current {
		delete(store.sessions, current.userID)
	}
	store.mu.Unlock()
}

func (store *sessionStore) len() int {
	store.mu.Lock()
	defer store.mu.Unlock()
	return len(store.sessions)
}
