package fallback

import (
	"context"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/kamusis/verbmotion/internal/embeddings"
)

const warmupText = "move"

// worker owns the embeddings provider. Requests go in on requests; every
// reply, including ready, comes back on replies and is routed to the
// waiting caller by dispatch.
type worker struct {
	provider embeddings.Provider
	cache    *lru.Cache[string, []float32]
	logger   *zap.Logger

	requests chan embedRequest
	replies  chan message

	mu      sync.Mutex
	pending map[string]chan message

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	onReady func()
}

func newWorker(p embeddings.Provider, cacheSize int, logger *zap.Logger, onReady func()) *worker {
	cache, err := lru.New[string, []float32](cacheSize)
	if err != nil {
		// Only a non-positive size fails.
		cache, _ = lru.New[string, []float32](defaultCacheSize)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &worker{
		provider: p,
		cache:    cache,
		logger:   logger,
		requests: make(chan embedRequest),
		replies:  make(chan message, 16),
		pending:  map[string]chan message{},
		ctx:      ctx,
		cancel:   cancel,
		onReady:  onReady,
	}
}

func (w *worker) start() {
	w.wg.Add(2)
	go w.run()
	go w.dispatch()
}

func (w *worker) stop() {
	w.cancel()
	w.wg.Wait()
}

func (w *worker) run() {
	defer w.wg.Done()

	if _, err := w.provider.Embed(w.ctx, warmupText); err != nil {
		w.logger.Debug("embedding warm-up failed", zap.Error(err))
	}
	if !w.send(ready{}) {
		return
	}

	for {
		select {
		case <-w.ctx.Done():
			return
		case req := <-w.requests:
			if !w.send(w.embed(req)) {
				return
			}
		}
	}
}

func (w *worker) embed(req embedRequest) message {
	if v, ok := w.cache.Get(req.Text); ok {
		return embedResult{ID: req.ID, Vector: v}
	}
	v, err := w.provider.Embed(w.ctx, req.Text)
	if err != nil {
		return embedError{ID: req.ID, Message: err.Error()}
	}
	w.cache.Add(req.Text, v)
	return embedResult{ID: req.ID, Vector: v}
}

func (w *worker) send(m message) bool {
	select {
	case w.replies <- m:
		return true
	case <-w.ctx.Done():
		return false
	}
}

func (w *worker) dispatch() {
	defer w.wg.Done()
	for {
		select {
		case <-w.ctx.Done():
			return
		case m := <-w.replies:
			var id string
			switch m := m.(type) {
			case ready:
				if w.onReady != nil {
					w.onReady()
				}
				continue
			case embedResult:
				id = m.ID
			case embedError:
				id = m.ID
			}
			w.mu.Lock()
			ch, ok := w.pending[id]
			delete(w.pending, id)
			w.mu.Unlock()
			if !ok {
				w.logger.Debug("dropping reply for abandoned request", zap.String("id", id))
				continue
			}
			ch <- m
		}
	}
}

// request submits text under id and returns the channel its reply arrives
// on. The channel is buffered so dispatch never blocks on a gone caller.
func (w *worker) request(ctx context.Context, id, text string) (<-chan message, error) {
	ch := make(chan message, 1)
	w.mu.Lock()
	w.pending[id] = ch
	w.mu.Unlock()

	select {
	case w.requests <- embedRequest{ID: id, Text: text}:
		return ch, nil
	case <-ctx.Done():
		w.forget(id)
		return nil, ctx.Err()
	case <-w.ctx.Done():
		w.forget(id)
		return nil, ErrDisposed
	}
}

func (w *worker) forget(id string) {
	w.mu.Lock()
	delete(w.pending, id)
	w.mu.Unlock()
}
