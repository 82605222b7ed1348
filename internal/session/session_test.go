package session

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreGetOrCreate(t *testing.T) {
	t.Parallel()

	store := NewStore()

	a := store.GetOrCreate("u1")
	b := store.GetOrCreate("u1")
	assert.Same(t, a, b, "second lookup must return the same session")

	c := store.GetOrCreate("u2")
	assert.NotSame(t, a, c)

	_, ok := store.Get("u3")
	assert.False(t, ok)
}

func TestStoreConcurrentCreate(t *testing.T) {
	t.Parallel()

	store := NewStore()
	var wg sync.WaitGroup
	sessions := make([]*Session, 16)
	for i := range sessions {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sessions[i] = store.GetOrCreate("u1")
		}(i)
	}
	wg.Wait()

	for _, s := range sessions[1:] {
		assert.Same(t, sessions[0], s)
	}
}

func TestSessionIsolation(t *testing.T) {
	t.Parallel()

	store := NewStore()
	u1 := store.GetOrCreate("u1")
	u2 := store.GetOrCreate("u2")

	u1.Lock()
	u1.Order.TotalQuantity = 3
	u1.LastIntent = "color_with_quantity"
	u1.Unlock()

	u2.Lock()
	defer u2.Unlock()
	assert.Zero(t, u2.Order.TotalQuantity)
	assert.Empty(t, u2.LastIntent)
}

func TestAppendTurnWindow(t *testing.T) {
	t.Parallel()

	s := &Session{}
	s.Lock()
	defer s.Unlock()

	for i := 0; i < MaxHistory+2; i++ {
		s.AppendTurn(Turn{Role: "user", Content: fmt.Sprintf("msg %d", i)})
	}

	require.Len(t, s.History, MaxHistory)
	assert.Equal(t, "msg 2", s.History[0].Content)
	assert.Equal(t, fmt.Sprintf("msg %d", MaxHistory+1), s.History[MaxHistory-1].Content)
}

func TestRecentHistoryCopies(t *testing.T) {
	t.Parallel()

	s := &Session{}
	s.Lock()
	defer s.Unlock()

	s.AppendTurn(Turn{Role: "user", Content: "สวัสดี"})
	got := s.RecentHistory()
	got[0].Content = "changed"
	assert.Equal(t, "สวัสดี", s.History[0].Content)
}

func TestOrderSnapshotDeepCopies(t *testing.T) {
	t.Parallel()

	s := &Session{}
	s.Lock()
	defer s.Unlock()

	s.Order = OrderInfo{
		Colors:        []ColorQuantity{{Color: "ดำ", Quantity: 2}},
		TotalQuantity: 2,
		AddressInfo:   &AddressInfo{HasPhone: true, Phone: "0812345678"},
	}

	snap := s.OrderSnapshot()
	snap.Colors[0].Quantity = 9
	snap.AddressInfo.Phone = "changed"

	assert.Equal(t, 2, s.Order.Colors[0].Quantity)
	assert.Equal(t, "0812345678", s.Order.AddressInfo.Phone)
}

func TestManualModeLifecycle(t *testing.T) {
	t.Parallel()

	store := NewStore()

	assert.False(t, store.ResetManualMode("unknown"), "reset without a session must report false")

	s := store.GetOrCreate("u1")
	s.Lock()
	s.ManualMode = true
	s.Unlock()

	assert.True(t, store.ManualModeStatus("u1"))
	assert.True(t, store.ResetManualMode("u1"))
	assert.False(t, store.ManualModeStatus("u1"))

	assert.False(t, store.ManualModeStatus("fresh"), "status lookup creates a clean session")
	_, ok := store.Get("fresh")
	assert.True(t, ok)
}
