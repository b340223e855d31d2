package host

import "sync"

// Disposable releases a registration or resource.
type Disposable interface {
	Dispose()
}

// DisposableFunc adapts a function to Disposable.
type DisposableFunc func()

// Dispose implements Disposable.
func (f DisposableFunc) Dispose() {
	if f != nil {
		f()
	}
}

// Disposables disposes a group of registrations together.
type Disposables struct {
	mu    sync.Mutex
	items []Disposable
}

// Add appends d to the group. Nil values are ignored.
func (d *Disposables) Add(items ...Disposable) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, item := range items {
		if item != nil {
			d.items = append(d.items, item)
		}
	}
}

// Len returns the number of held registrations.
func (d *Disposables) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.items)
}

// Dispose disposes every held registration in reverse order and empties
// the group.
func (d *Disposables) Dispose() {
	d.mu.Lock()
	items := d.items
	d.items = nil
	d.mu.Unlock()

	for i := len(items) - 1; i >= 0; i-- {
		items[i].Dispose()
	}
}

// Emitter fans a value out to registered listeners.
//
// Listeners are called synchronously in registration order. A listener
// may dispose its own registration while being called.
type Emitter[T any] struct {
	mu        sync.Mutex
	nextID    uint64
	listeners []listener[T]
}

type listener[T any] struct {
	id uint64
	fn func(T)
}

// Event registers fn and returns a Disposable that removes it.
func (e *Emitter[T]) Event(fn func(T)) Disposable {
	e.mu.Lock()
	e.nextID++
	id := e.nextID
	e.listeners = append(e.listeners, listener[T]{id: id, fn: fn})
	e.mu.Unlock()

	return DisposableFunc(func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		for i, l := range e.listeners {
			if l.id == id {
				e.listeners = append(e.listeners[:i:i], e.listeners[i+1:]...)
				return
			}
		}
	})
}

// Fire calls every listener with v.
func (e *Emitter[T]) Fire(v T) {
	e.mu.Lock()
	snapshot := make([]listener[T], len(e.listeners))
	copy(snapshot, e.listeners)
	e.mu.Unlock()

	for _, l := range snapshot {
		l.fn(v)
	}
}

// ListenerCount returns the number of registered listeners.
func (e *Emitter[T]) ListenerCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.listeners)
}

// Dispose removes all listeners.
func (e *Emitter[T]) Dispose() {
	e.mu.Lock()
	e.listeners = nil
	e.mu.Unlock()
}
