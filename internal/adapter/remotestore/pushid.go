package remotestore

import (
	"math/rand"
	"sync"
	"time"
)

// Alphabet is in ASCII order so ids sort lexically by creation time
const pushChars = "-0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ_abcdefghijklmnopqrstuvwxyz"

// PushIDGenerator produces 20 character keys: 8 characters of millisecond
// timestamp followed by 12 random characters. Ids generated within the same
// millisecond increment the random part so ordering is kept.
type PushIDGenerator struct {
	mu       sync.Mutex
	now      func() time.Time
	lastTime int64
	lastRand [12]int
}

func NewPushIDGenerator() *PushIDGenerator {
	return &PushIDGenerator{now: time.Now}
}

func (g *PushIDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now().UnixMilli()
	sameTick := now <= g.lastTime
	if sameTick {
		now = g.lastTime
	}
	g.lastTime = now

	var id [20]byte
	t := now
	for i := 7; i >= 0; i-- {
		id[i] = pushChars[t%64]
		t /= 64
	}

	if !sameTick {
		for i := range g.lastRand {
			g.lastRand[i] = rand.Intn(64)
		}
	} else {
		i := len(g.lastRand) - 1
		for ; i >= 0 && g.lastRand[i] == 63; i-- {
			g.lastRand[i] = 0
		}
		if i >= 0 {
			g.lastRand[i]++
		}
	}

	for i, r := range g.lastRand {
		id[8+i] = pushChars[r]
	}
	return string(id[:])
}
