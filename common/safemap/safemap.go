package safemap

import (
	"sync"
)

// SafeMap is a thread-safe map implementation using sync.Map.
type SafeMap[K comparable, V any] struct {
	m sync.Map
}

func NewSafeMap[K comparable, V any]() *SafeMap[K, V] {
	return &SafeMap[K, V]{}
}

func (sm *SafeMap[K, V]) Set(key K, value V) {
	sm.m.Store(key, value)
}

func (sm *SafeMap[K, V]) Get(key K) (V, bool) {
	value, ok := sm.m.Load(key)
	if !ok {
		var zero V
		return zero, false
	}
	return value.(V), ok
}

func (sm *SafeMap[K, V]) Delete(key K) {
	sm.m.Delete(key)
}

func (sm *SafeMap[K, V]) Len() int {
	length := 0
	sm.m.Range(func(key, value any) bool {
		length++
		return true
	})
	return length
}

func (sm *SafeMap[K, V]) Keys() []K {
	keys := make([]K, 0)
	sm.m.Range(func(key, value any) bool {
		keys = append(keys, key.(K))
		return true
	})
	return keys
}

func (sm *SafeMap[K, V]) LoadAndDelete(key K) (value V, loaded bool) {
	v, l := sm.m.LoadAndDelete(key)
	if !l {
		var zero V
		return zero, l
	}
	return v.(V), l
}

// Drain removes every entry and hands each one to f.
func (sm *SafeMap[K, V]) Drain(f func(key K, value V)) {
	for _, key := range sm.Keys() {
		if value, ok := sm.LoadAndDelete(key); ok {
			f(key, value)
		}
	}
}
