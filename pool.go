package md2apa

import (
	"errors"
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps browser instances to limit memory (~200MB each).
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for Chrome child processes.
	cpuDivisor = 2
)

// ErrPoolClosed is returned by Acquire after Close.
var ErrPoolClosed = errors.New("converter pool is closed")

// ConverterPool hands out independent Converters for parallel batch
// conversion. Converters are created lazily on first Acquire and share
// nothing, so each conversion runs on its own builder and browser.
type ConverterPool struct {
	size       int
	opts       []Option
	converters []*Converter
	idle       chan *Converter
	mu         sync.Mutex
	created    int
	closed     bool
}

// NewConverterPool creates a pool of up to n Converters built with opts.
func NewConverterPool(n int, opts ...Option) *ConverterPool {
	n = max(n, MinPoolSize)
	return &ConverterPool{
		size:       n,
		opts:       opts,
		converters: make([]*Converter, 0, n),
		idle:       make(chan *Converter, n),
	}
}

// Acquire returns an idle Converter, creating one while the pool is below
// capacity. It blocks when every Converter is in use.
func (p *ConverterPool) Acquire() (*Converter, error) {
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		return nil, ErrPoolClosed
	}

	select {
	case conv, ok := <-p.idle:
		if !ok {
			return nil, ErrPoolClosed
		}
		return conv, nil
	default:
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrPoolClosed
	}
	if p.created < p.size {
		p.created++
		p.mu.Unlock()

		conv, err := NewConverter(p.opts...)
		if err != nil {
			p.mu.Lock()
			p.created--
			p.mu.Unlock()
			return nil, err
		}

		p.mu.Lock()
		p.converters = append(p.converters, conv)
		p.mu.Unlock()
		return conv, nil
	}
	p.mu.Unlock()

	conv, ok := <-p.idle
	if !ok {
		return nil, ErrPoolClosed
	}
	return conv, nil
}

// Release returns conv to the pool. Releasing after Close is a no-op.
func (p *ConverterPool) Release(conv *Converter) {
	if conv == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	// idle has room for every created Converter, so this never blocks.
	p.idle <- conv
}

// Close releases every browser. Converters still acquired must not be used
// afterwards.
func (p *ConverterPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.idle)
	// Drain so a blocked or later Acquire never receives a closed Converter.
	for range p.idle {
	}
	converters := p.converters
	p.mu.Unlock()

	var errs []error
	for _, conv := range converters {
		if err := conv.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Size returns the pool capacity.
func (p *ConverterPool) Size() int {
	return p.size
}

// ResolvePoolSize returns workers when positive, otherwise half of
// GOMAXPROCS clamped to [MinPoolSize, MaxPoolSize].
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}
	n := runtime.GOMAXPROCS(0) / cpuDivisor
	return min(max(n, MinPoolSize), MaxPoolSize)
}
