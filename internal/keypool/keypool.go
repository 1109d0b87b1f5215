package keypool

import (
	"fmt"
	"os"
	"sync"

	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/config"
)

// Pool hands out upstream API keys round-robin. It is constructed once in
// main and passed by reference to every request handler; the index increment
// is the only part that needs the lock (handing two requests the same key is
// harmless, a corrupted index is not).
type Pool struct {
	mu   sync.Mutex
	keys []entry
	next int
}

type entry struct {
	label string
	value string
}

func New(labels, values []string) *Pool {
	p := &Pool{}
	for i := range labels {
		p.keys = append(p.keys, entry{label: labels[i], value: values[i]})
	}
	return p
}

// FromEnv reads NVIDIA_API_KEY_1..N. Unset slots are kept so key labels stay
// stable; Next skips over them.
func FromEnv() *Pool {
	p := &Pool{}
	for i := 1; i <= config.NvidiaKeyCount; i++ {
		label := fmt.Sprintf("%s%d", config.NvidiaKeyEnvPrefix, i)
		p.keys = append(p.keys, entry{label: label, value: os.Getenv(label)})
	}
	return p
}

// Next returns the next key label and value. An empty value means no usable
// key exists in the pool.
func (p *Pool) Next() (string, string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for range p.keys {
		e := p.keys[p.next]
		p.next = (p.next + 1) % len(p.keys)
		if e.value != "" {
			return e.label, e.value
		}
	}
	return "", ""
}

func (p *Pool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, e := range p.keys {
		if e.value != "" {
			n++
		}
	}
	return n
}
