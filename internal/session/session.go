package session

import "sync"

// MaxHistory caps the per-session conversation log. Oldest turns are
// dropped first; the same window is what the classifier sees.
const MaxHistory = 10

// ColorQuantity is one (color, quantity) pair extracted from a customer message.
type ColorQuantity struct {
	Color    string `json:"color"`
	Quantity int    `json:"quantity"`
}

// AddressInfo holds the parsed shipping address pieces.
type AddressInfo struct {
	HasName    bool   `json:"has_name"`
	HasAddress bool   `json:"has_address"`
	HasPhone   bool   `json:"has_phone"`
	Name       string `json:"extracted_name"`
	Address    string `json:"extracted_address"`
	Phone      string `json:"extracted_phone"`
}

// OrderInfo is the purchase state accumulated across turns. Colors and
// TotalQuantity are overwritten wholesale by the turn that produced new
// values, never merged.
type OrderInfo struct {
	Colors        []ColorQuantity `json:"colors,omitempty"`
	TotalQuantity int             `json:"total_quantity,omitempty"`
	Size          string          `json:"size,omitempty"`
	AddressInfo   *AddressInfo    `json:"address_info,omitempty"`
}

// Turn is one entry of the conversation history.
type Turn struct {
	Role    string `json:"role"` // "user" or "bot"
	Content string `json:"content"`
	Intent  string `json:"intent"`
}

// Session is the per-user conversation state. All fields besides the
// mutex must only be touched while the session lock is held; a turn
// holds the lock end to end so concurrent messages from the same user
// are serialized.
type Session struct {
	mu sync.Mutex

	LastIntent  string
	LastMessage string
	ManualMode  bool
	Order       OrderInfo
	History     []Turn
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// AppendTurn appends to the history, dropping the oldest entries beyond
// MaxHistory. Caller must hold the session lock.
func (s *Session) AppendTurn(t Turn) {
	s.History = append(s.History, t)
	if len(s.History) > MaxHistory {
		s.History = s.History[len(s.History)-MaxHistory:]
	}
}

// RecentHistory returns a copy of the history to avoid aliasing the
// live slice. Caller must hold the session lock.
func (s *Session) RecentHistory() []Turn {
	out := make([]Turn, len(s.History))
	copy(out, s.History)
	return out
}

// OrderSnapshot deep-copies the order state for inclusion in a turn
// result. Caller must hold the session lock.
func (s *Session) OrderSnapshot() OrderInfo {
	snap := s.Order
	snap.Colors = append([]ColorQuantity(nil), s.Order.Colors...)
	if s.Order.AddressInfo != nil {
		addr := *s.Order.AddressInfo
		snap.AddressInfo = &addr
	}
	return snap
}

// Store keeps one Session per user id. Sessions are created lazily and
// never evicted.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// GetOrCreate returns the session for userID, creating a zero-state one
// on first contact. Creation is idempotent.
func (st *Store) GetOrCreate(userID string) *Session {
	st.mu.RLock()
	s, ok := st.sessions[userID]
	st.mu.RUnlock()
	if ok {
		return s
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	if s, ok := st.sessions[userID]; ok {
		return s
	}
	s = &Session{}
	st.sessions[userID] = s
	return s
}

// Get returns the session for userID without creating one.
func (st *Store) Get(userID string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[userID]
	return s, ok
}

// ResetManualMode clears the manual-mode flag. Returns false when the
// user has no session yet.
func (st *Store) ResetManualMode(userID string) bool {
	s, ok := st.Get(userID)
	if !ok {
		return false
	}
	s.Lock()
	s.ManualMode = false
	s.Unlock()
	return true
}

// ManualModeStatus reports whether the user is in manual mode, creating
// the session if needed.
func (st *Store) ManualModeStatus(userID string) bool {
	s := st.GetOrCreate(userID)
	s.Lock()
	defer s.Unlock()
	return s.ManualMode
}
