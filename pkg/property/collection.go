package property

import (
	"reflect"
	"sync"
)

// Collection is the ordered list of converters consulted by the host. Each
// concrete converter type appears at most once; earlier converters win when
// several accept the same property.
type Collection struct {
	mu    sync.RWMutex
	items []ValueConverter
}

// NewCollection creates a collection holding converters in order.
func NewCollection(converters ...ValueConverter) *Collection {
	c := &Collection{}
	for _, conv := range converters {
		c.Append(conv)
	}
	return c
}

// TypeOf returns the reflect.Type used to identify converters of type T.
func TypeOf[T ValueConverter]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Append adds conv at the end. An existing converter of the same type is
// moved.
func (c *Collection) Append(conv ValueConverter) *Collection {
	if conv == nil {
		return c
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = append(c.without(reflect.TypeOf(conv)), conv)
	return c
}

// InsertAfter places conv immediately after the converter of type anchor.
// When anchor is not in the collection conv is appended.
func (c *Collection) InsertAfter(anchor reflect.Type, conv ValueConverter) *Collection {
	if conv == nil {
		return c
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	items := c.without(reflect.TypeOf(conv))
	idx := indexOf(items, anchor)
	if idx < 0 {
		c.items = append(items, conv)
		return c
	}
	out := make([]ValueConverter, 0, len(items)+1)
	out = append(out, items[:idx+1]...)
	out = append(out, conv)
	out = append(out, items[idx+1:]...)
	c.items = out
	return c
}

// Remove drops the converter of type t. Removing an absent type is a no-op.
func (c *Collection) Remove(t reflect.Type) *Collection {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = c.without(t)
	return c
}

// Replace swaps the converter of type TOld for conv at the same position.
func Replace[TOld ValueConverter](c *Collection, conv ValueConverter) *Collection {
	if c == nil || conv == nil {
		return c
	}
	old := TypeOf[TOld]()
	if reflect.TypeOf(conv) == old {
		return c.swap(conv)
	}
	c.InsertAfter(old, conv)
	return c.Remove(old)
}

func (c *Collection) swap(conv ValueConverter) *Collection {
	c.mu.Lock()
	defer c.mu.Unlock()

	if idx := indexOf(c.items, reflect.TypeOf(conv)); idx >= 0 {
		c.items[idx] = conv
		return c
	}
	c.items = append(c.items, conv)
	return c
}

// Find returns the first converter accepting t.
func (c *Collection) Find(t Type) (ValueConverter, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, conv := range c.items {
		if conv.IsConverter(t) {
			return conv, true
		}
	}
	return nil, false
}

// Converters returns a snapshot of the collection in order.
func (c *Collection) Converters() []ValueConverter {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]ValueConverter(nil), c.items...)
}

// Types returns the converter types in order.
func (c *Collection) Types() []reflect.Type {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]reflect.Type, len(c.items))
	for i, conv := range c.items {
		out[i] = reflect.TypeOf(conv)
	}
	return out
}

// without must be called with the lock held.
func (c *Collection) without(t reflect.Type) []ValueConverter {
	out := make([]ValueConverter, 0, len(c.items))
	for _, conv := range c.items {
		if reflect.TypeOf(conv) == t {
			continue
		}
		out = append(out, conv)
	}
	return out
}

func indexOf(items []ValueConverter, t reflect.Type) int {
	for i, conv := range items {
		if reflect.TypeOf(conv) == t {
			return i
		}
	}
	return -1
}
