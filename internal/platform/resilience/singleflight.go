package resilience

import "sync"

type flightCall struct {
	wg  sync.WaitGroup
	val any
	err error
}

// SingleFlight collapses concurrent calls that share a key into a single
// execution; late arrivals block and receive the first call's result.
type SingleFlight struct {
	mu    sync.Mutex
	calls map[string]*flightCall
}

func NewSingleFlight() *SingleFlight {
	return &SingleFlight{calls: make(map[string]*flightCall)}
}

func (s *SingleFlight) Do(key string, fn func() (any, error)) (any, error) {
	s.mu.Lock()
	if c, ok := s.calls[key]; ok {
		s.mu.Unlock()
		c.wg.Wait()
		return c.val, c.err
	}

	c := &flightCall{}
	c.wg.Add(1)
	s.calls[key] = c
	s.mu.Unlock()

	c.val, c.err = fn()
	c.wg.Done()

	s.mu.Lock()
	delete(s.calls, key)
	s.mu.Unlock()

	return c.val, c.err
}
