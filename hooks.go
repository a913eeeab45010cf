package cashier

import "context"

// Hooks receive diagnostic cache events. Every field is optional; a nil
// Hooks or a nil field is simply skipped, and the presence or absence of
// hooks never changes what a call returns. Callbacks run on the calling
// goroutine (OnEvict on the store's sweep goroutine) and must be fast and
// must not panic.
type Hooks struct {
	// OnHit fires when a call is served from the store.
	OnHit func(ctx context.Context, key string)
	// OnMiss fires when no fresh entry exists for the derived key.
	OnMiss func(ctx context.Context, key string)
	// OnStore fires after a computed result is written to the store.
	OnStore func(ctx context.Context, key string)
	// OnShared fires for each caller that received a result computed by a
	// concurrent call with the same key rather than its own execution.
	OnShared func(ctx context.Context, key string)
	// OnEvict fires when an entry is removed because its TTL elapsed. Only
	// wired for stores owned by the wrapped callable; an injected store
	// reports evictions through its own WithEvictFunc option.
	OnEvict func(key string)
}

func (h *Hooks) hit(ctx context.Context, key string) {
	if h != nil && h.OnHit != nil {
		h.OnHit(ctx, key)
	}
}

func (h *Hooks) miss(ctx context.Context, key string) {
	if h != nil && h.OnMiss != nil {
		h.OnMiss(ctx, key)
	}
}

func (h *Hooks) store(ctx context.Context, key string) {
	if h != nil && h.OnStore != nil {
		h.OnStore(ctx, key)
	}
}

func (h *Hooks) shared(ctx context.Context, key string) {
	if h != nil && h.OnShared != nil {
		h.OnShared(ctx, key)
	}
}

func (h *Hooks) evict(key string) {
	if h != nil && h.OnEvict != nil {
		h.OnEvict(key)
	}
}

// JoinHooks returns a hook set that dispatches each event to every non-nil
// hook set in order. Useful for combining logging hooks with metric hooks.
func JoinHooks(sets ...*Hooks) *Hooks {
	return &Hooks{
		OnHit: func(ctx context.Context, key string) {
			for _, s := range sets {
				s.hit(ctx, key)
			}
		},
		OnMiss: func(ctx context.Context, key string) {
			for _, s := range sets {
				s.miss(ctx, key)
			}
		},
		OnStore: func(ctx context.Context, key string) {
			for _, s := range sets {
				s.store(ctx, key)
			}
		},
		OnShared: func(ctx context.Context, key string) {
			for _, s := range sets {
				s.shared(ctx, key)
			}
		},
		OnEvict: func(key string) {
			for _, s := range sets {
				s.evict(key)
			}
		},
	}
}
