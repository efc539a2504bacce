package store

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/YelzhanWeb/storefront/internal/adapter/logger"
	"github.com/YelzhanWeb/storefront/internal/interfaces"
	"github.com/YelzhanWeb/storefront/internal/state"
)

type result struct {
	root  state.Root
	panic interface{}
}

type request struct {
	action state.Action
	reply  chan result
}

// Store owns the root state. A single goroutine applies actions in arrival order.
type Store struct {
	logger   logger.Logger
	requests chan request
	done     chan struct{}
	stopped  chan struct{}
	once     sync.Once

	current atomic.Pointer[state.Root]

	mu     sync.Mutex
	subs   map[int]chan state.Root
	nextID int
}

var _ interfaces.StateStore = (*Store)(nil)

func New(initial state.Root, lgr logger.Logger) *Store {
	s := &Store{
		logger:   lgr,
		requests: make(chan request),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
		subs:     make(map[int]chan state.Root),
	}
	s.current.Store(&initial)

	go s.loop(initial)
	return s
}

// Dispatch applies the action and returns the resulting state.
// After Close the action is dropped and the last state is returned.
func (s *Store) Dispatch(a state.Action) state.Root {
	reply := make(chan result, 1)

	select {
	case s.requests <- request{action: a, reply: reply}:
	case <-s.done:
		return s.State()
	}

	res := <-reply
	if res.panic != nil {
		panic(res.panic)
	}
	return res.root
}

func (s *Store) State() state.Root {
	return *s.current.Load()
}

// Subscribe returns a channel carrying the latest state after each dispatch.
// Slow readers only see the most recent snapshot.
func (s *Store) Subscribe() (<-chan state.Root, func()) {
	ch := make(chan state.Root, 1)

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if _, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(ch)
			}
		})
	}
	return ch, cancel
}

func (s *Store) Close() {
	s.once.Do(func() {
		close(s.done)
		<-s.stopped

		s.mu.Lock()
		defer s.mu.Unlock()
		for id, ch := range s.subs {
			delete(s.subs, id)
			close(ch)
		}
	})
}

func (s *Store) loop(root state.Root) {
	defer close(s.stopped)

	for {
		select {
		case <-s.done:
			return

		case req := <-s.requests:
			next, p := s.apply(root, req.action)
			if p != nil {
				req.reply <- result{root: root, panic: p}
				continue
			}

			root = next
			s.current.Store(&next)
			s.log(req.action)
			s.publish(next)
			req.reply <- result{root: next}
		}
	}
}

func (s *Store) apply(root state.Root, a state.Action) (next state.Root, p interface{}) {
	defer func() {
		if r := recover(); r != nil {
			p = r
		}
	}()
	return state.Reduce(root, a), nil
}

func (s *Store) publish(root state.Root) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ch := range s.subs {
		select {
		case ch <- root:
		default:
			// выкидываем устаревший снимок
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- root:
			default:
			}
		}
	}
}

func (s *Store) log(a state.Action) {
	name := a.Name()
	details := map[string]interface{}{"type": name}

	switch state.PhaseOf(a) {
	case state.PhasePending:
		s.logger.Info("action_pending", fmt.Sprintf("Started: %s", name), "", details)
	case state.PhaseFulfilled:
		s.logger.Info("action_fulfilled", fmt.Sprintf("Completed: %s", name), "", details)
	case state.PhaseRejected:
		var err error
		if f, ok := a.(state.Failure); ok {
			err = errors.New(f.Error())
		}
		s.logger.Error("action_rejected", fmt.Sprintf("Failed: %s", name), "", details, err)
	default:
		s.logger.Debug("action_dispatched", fmt.Sprintf("Action: %s", name), "", details)
	}
}
