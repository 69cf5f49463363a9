package kv

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"go.uber.org/zap"
)

const defaultWriteTimeout = 5 * time.Second

// WriterOptions configure a Writer.
type WriterOptions struct {
	// Debounce delays each key's write so bursts of mutations collapse into one.
	Debounce time.Duration
	// WriteTimeout bounds a single adapter Set call.
	WriteTimeout time.Duration
	Logger       *zap.Logger
}

// Stats counts what the writer has done since it was created.
type Stats struct {
	Scheduled uint64
	Written   uint64
	Failed    uint64
	Coalesced uint64
	Dropped   uint64
}

// Writer persists values in the background without blocking callers.
//
// Writes are keyed: each key has at most one write in flight, and a value
// scheduled while a write is running replaces any value still waiting. The
// last value scheduled for a key is therefore always the last one stored.
// Failed writes are logged and counted, never retried.
type Writer struct {
	adapter      Adapter
	logger       *zap.Logger
	debounce     time.Duration
	writeTimeout time.Duration

	mu     sync.Mutex
	slots  map[string]*slot
	active int
	idle   chan struct{} // closed while no key is being written
	wake   chan struct{} // closed to cut debounce waits short
	closed bool

	metrics   *metrics.Set
	scheduled *metrics.Counter
	written   *metrics.Counter
	failed    *metrics.Counter
	coalesced *metrics.Counter
	dropped   *metrics.Counter
}

type slot struct {
	pending string
	dirty   bool
	running bool
}

var _ Scheduler = (*Writer)(nil)

// NewWriter returns a Writer that stores values through adapter.
func NewWriter(adapter Adapter, opts WriterOptions) *Writer {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := opts.WriteTimeout
	if timeout <= 0 {
		timeout = defaultWriteTimeout
	}
	debounce := max(opts.Debounce, 0)

	idle := make(chan struct{})
	close(idle)

	set := metrics.NewSet()
	return &Writer{
		adapter:      adapter,
		logger:       logger.Named("kv"),
		debounce:     debounce,
		writeTimeout: timeout,
		slots:        make(map[string]*slot),
		idle:         idle,
		wake:         make(chan struct{}),
		metrics:      set,
		scheduled:    set.NewCounter("cocteler_kv_writes_scheduled_total"),
		written:      set.NewCounter("cocteler_kv_writes_total"),
		failed:       set.NewCounter("cocteler_kv_write_failures_total"),
		coalesced:    set.NewCounter("cocteler_kv_writes_coalesced_total"),
		dropped:      set.NewCounter("cocteler_kv_writes_dropped_total"),
	}
}

// Schedule queues value to be stored under key and returns immediately.
func (w *Writer) Schedule(key, value string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		w.dropped.Inc()
		w.logger.Warn("write scheduled after close", zap.String("key", key))
		return
	}

	w.scheduled.Inc()
	s := w.slots[key]
	if s == nil {
		s = &slot{}
		w.slots[key] = s
	}
	if s.dirty {
		w.coalesced.Inc()
	}
	s.pending = value
	s.dirty = true
	if s.running {
		return
	}

	s.running = true
	if w.active == 0 {
		w.idle = make(chan struct{})
	}
	w.active++
	go w.run(key, s)
}

// run owns key until nothing is left to write for it.
func (w *Writer) run(key string, s *slot) {
	for {
		w.wait()

		w.mu.Lock()
		value := s.pending
		s.pending, s.dirty = "", false
		w.mu.Unlock()

		w.write(key, value)

		w.mu.Lock()
		if !s.dirty {
			s.running = false
			delete(w.slots, key)
			w.active--
			if w.active == 0 {
				close(w.idle)
			}
			w.mu.Unlock()
			return
		}
		w.mu.Unlock()
	}
}

func (w *Writer) wait() {
	if w.debounce <= 0 {
		return
	}
	w.mu.Lock()
	wake := w.wake
	w.mu.Unlock()

	timer := time.NewTimer(w.debounce)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-wake:
	}
}

func (w *Writer) write(key, value string) {
	ctx, cancel := context.WithTimeout(context.Background(), w.writeTimeout)
	defer cancel()

	if err := w.adapter.Set(ctx, key, value); err != nil {
		w.failed.Inc()
		w.logger.Warn("persist failed", zap.String("key", key), zap.Error(err))
		return
	}
	w.written.Inc()
	w.logger.Debug("persisted", zap.String("key", key), zap.Int("bytes", len(value)))
}

// Flush skips pending debounce delays and waits until every scheduled value
// has been handed to the adapter.
func (w *Writer) Flush(ctx context.Context) error {
	for {
		w.mu.Lock()
		if w.active == 0 {
			w.mu.Unlock()
			return nil
		}
		if !w.closed {
			close(w.wake)
			w.wake = make(chan struct{})
		}
		idle := w.idle
		w.mu.Unlock()

		select {
		case <-idle:
		case <-ctx.Done():
			return fmt.Errorf("flush writes: %w", ctx.Err())
		}
	}
}

// Close flushes outstanding writes; values scheduled afterwards are dropped.
func (w *Writer) Close(ctx context.Context) error {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.wake)
	}
	w.mu.Unlock()
	return w.Flush(ctx)
}

// Stats returns a snapshot of the writer counters.
func (w *Writer) Stats() Stats {
	return Stats{
		Scheduled: w.scheduled.Get(),
		Written:   w.written.Get(),
		Failed:    w.failed.Get(),
		Coalesced: w.coalesced.Get(),
		Dropped:   w.dropped.Get(),
	}
}

// WritePrometheus writes the writer counters in Prometheus text format.
func (w *Writer) WritePrometheus(out io.Writer) {
	w.metrics.WritePrometheus(out)
}
