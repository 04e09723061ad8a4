package browse

import "sync"

// Session is one user's ephemeral walk over a ranked candidate queue. It is
// mutated only by that user's own sequential actions; the registry lock
// guards the map, not the walk.
//
// States: absent from the registry (no session) -> active -> exhausted
// (removed again). The cursor only moves forward.
type Session struct {
	ViewerUserID     int64
	Queue            []int64 // candidate profile ids, unique, viewer excluded
	Cursor           int
	CurrentProfileID int64 // 0 until a candidate has been presented

	// viewer coordinates frozen at start, for distance on candidate cards
	viewerLat *float64
	viewerLon *float64
}

// CurrentID returns the profile id under the cursor, or false when the queue
// is exhausted.
func (s *Session) CurrentID() (int64, bool) {
	if s.Cursor >= len(s.Queue) {
		return 0, false
	}
	return s.Queue[s.Cursor], true
}

// Advance moves the cursor forward and reports whether a candidate remains.
func (s *Session) Advance() bool {
	s.Cursor++
	s.CurrentProfileID = 0
	return s.Cursor < len(s.Queue)
}

// Registry holds the active browse session per user. A new Start replaces any
// previous session; exhaustion removes it.
type Registry struct {
	mu       sync.Mutex
	sessions map[int64]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[int64]*Session)}
}

func (r *Registry) Get(viewerUserID int64) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[viewerUserID]
	return s, ok
}

func (r *Registry) Put(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ViewerUserID] = s
}

func (r *Registry) Remove(viewerUserID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, viewerUserID)
}
