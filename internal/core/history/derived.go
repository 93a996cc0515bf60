package history

// Derived holds a lazily computed value with an explicit clear operation.
// Entities use it for properties derived from persisted fields; Reload must
// call Clear so the next access recomputes from fresh state.
type Derived[T any] struct {
	valid bool
	value T
}

// Get returns the held value, computing and memoizing it on first access.
func (d *Derived[T]) Get(compute func() T) T {
	if !d.valid {
		d.value = compute()
		d.valid = true
	}
	return d.value
}

// Clear drops the memoized value.
func (d *Derived[T]) Clear() {
	var zero T
	d.value = zero
	d.valid = false
}

// Valid reports whether a value is currently memoized.
func (d *Derived[T]) Valid() bool {
	return d.valid
}
