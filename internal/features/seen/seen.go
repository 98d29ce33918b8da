package seen

// Seen-set of token addresses that were already alerted on.
// Lives for the process lifetime only; nothing is persisted.

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Set is safe for concurrent use.
type Set interface {
	Contains(address string) bool
	Add(address string)
	Len() int
}

// New returns an unbounded set when capacity is 0, otherwise an LRU set holding at most capacity addresses.
func New(capacity int) Set {
	if capacity <= 0 {
		return NewUnbounded()
	}
	return NewBounded(capacity)
}

// Unbounded grows monotonically and is never pruned.
type Unbounded struct {
	mu        sync.RWMutex
	addresses map[string]struct{}
}

func NewUnbounded() *Unbounded {
	return &Unbounded{addresses: make(map[string]struct{})}
}

func (s *Unbounded) Contains(address string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.addresses[address]
	return ok
}

func (s *Unbounded) Add(address string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addresses[address] = struct{}{}
}

func (s *Unbounded) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.addresses)
}

// Bounded forgets the least recently added or checked address once full.
// A forgotten address can be alerted on again.
type Bounded struct {
	cache *lru.Cache[string, struct{}]
}

func NewBounded(capacity int) *Bounded {
	cache, err := lru.New[string, struct{}](capacity)
	if err != nil {
		// only returned for a non-positive size, which New never passes
		panic(err)
	}
	return &Bounded{cache: cache}
}

func (s *Bounded) Contains(address string) bool {
	_, ok := s.cache.Get(address)
	return ok
}

func (s *Bounded) Add(address string) {
	s.cache.Add(address, struct{}{})
}

func (s *Bounded) Len() int {
	return s.cache.Len()
}
