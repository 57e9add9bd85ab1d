package terrain

import "sort"

// BoundedCache кэш с мягким ограничением размера и вытеснением "холодной"
// половины неактивных записей. Это приближение LRU, а не строгий LRU:
// вытеснение срабатывает только при превышении порога, и кандидатами
// становятся лишь записи вне активного набора текущего кадра — активные
// записи не вытесняются независимо от размера кэша.
//
// Используется и для кэша гридов, и для записей физики (разные пространства
// ключей, разные пороги).
type BoundedCache[V any] struct {
	entries map[string]*cacheEntry[V]
	trigger int
	seq     uint64 // Монотонный счётчик обращений для сортировки по "возрасту"
}

type cacheEntry[V any] struct {
	value  V
	seq    uint64
	active bool
}

// NewBoundedCache создаёт кэш с указанным порогом вытеснения
func NewBoundedCache[V any](trigger int) *BoundedCache[V] {
	return &BoundedCache[V]{
		entries: make(map[string]*cacheEntry[V]),
		trigger: trigger,
	}
}

// Get возвращает значение и отмечает обращение
func (c *BoundedCache[V]) Get(key string) (V, bool) {
	if e, ok := c.entries[key]; ok {
		c.seq++
		e.seq = c.seq
		return e.value, true
	}
	var zero V
	return zero, false
}

// Put сохраняет значение
func (c *BoundedCache[V]) Put(key string, value V) {
	c.seq++
	c.entries[key] = &cacheEntry[V]{value: value, seq: c.seq}
}

// BeginFrame сбрасывает активный набор перед обновлением кадра
func (c *BoundedCache[V]) BeginFrame() {
	for _, e := range c.entries {
		e.active = false
	}
}

// MarkActive помечает запись активной в текущем кадре
func (c *BoundedCache[V]) MarkActive(key string) {
	if e, ok := c.entries[key]; ok {
		e.active = true
	}
}

// Evict при превышении порога удаляет старшую половину неактивных записей
// и возвращает удалённые значения, чтобы владелец освободил ресурсы
func (c *BoundedCache[V]) Evict() []V {
	if len(c.entries) <= c.trigger {
		return nil
	}

	type candidate struct {
		key string
		seq uint64
	}
	var inactive []candidate
	for key, e := range c.entries {
		if !e.active {
			inactive = append(inactive, candidate{key: key, seq: e.seq})
		}
	}
	if len(inactive) == 0 {
		return nil
	}

	sort.Slice(inactive, func(i, j int) bool {
		return inactive[i].seq < inactive[j].seq
	})

	half := (len(inactive) + 1) / 2
	evicted := make([]V, 0, half)
	for _, cand := range inactive[:half] {
		evicted = append(evicted, c.entries[cand.key].value)
		delete(c.entries, cand.key)
	}
	return evicted
}

// Delete удаляет запись и возвращает её значение
func (c *BoundedCache[V]) Delete(key string) (V, bool) {
	if e, ok := c.entries[key]; ok {
		delete(c.entries, key)
		return e.value, true
	}
	var zero V
	return zero, false
}

// Len возвращает количество записей
func (c *BoundedCache[V]) Len() int {
	return len(c.entries)
}

// Keys возвращает все ключи (порядок не определён)
func (c *BoundedCache[V]) Keys() []string {
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	return keys
}

// Range обходит записи; возврат false прерывает обход
func (c *BoundedCache[V]) Range(f func(key string, value V) bool) {
	for k, e := range c.entries {
		if !f(k, e.value) {
			return
		}
	}
}

// Clear удаляет все записи
func (c *BoundedCache[V]) Clear() {
	c.entries = make(map[string]*cacheEntry[V])
}
