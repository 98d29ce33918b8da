package seen

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPicksImplementation(t *testing.T) {
	assert.IsType(t, &Unbounded{}, New(0))
	assert.IsType(t, &Bounded{}, New(10))
}

func TestUnboundedNeverForgets(t *testing.T) {
	s := New(0)
	for i := 0; i < 1000; i++ {
		s.Add(fmt.Sprintf("addr-%d", i))
	}
	assert.Equal(t, 1000, s.Len())
	assert.True(t, s.Contains("addr-0"))
	assert.True(t, s.Contains("addr-999"))
	assert.False(t, s.Contains("addr-1000"))

	s.Add("addr-0")
	assert.Equal(t, 1000, s.Len())
}

func TestBoundedEvictsLeastRecentlyUsed(t *testing.T) {
	s := New(2)
	s.Add("a")
	s.Add("b")
	assert.True(t, s.Contains("a")) // a is now most recent

	s.Add("c")
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Contains("a"))
	assert.False(t, s.Contains("b"))
	assert.True(t, s.Contains("c"))
}

func TestSetsAreSafeForConcurrentUse(t *testing.T) {
	for _, s := range []Set{New(0), New(64)} {
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				for j := 0; j < 50; j++ {
					addr := fmt.Sprintf("%d-%d", i, j)
					s.Add(addr)
					s.Contains(addr)
					s.Len()
				}
			}(i)
		}
		wg.Wait()
		assert.Positive(t, s.Len())
	}
}
