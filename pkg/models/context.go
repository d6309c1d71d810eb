package models

// Context is the snapshot of current field values the host supplies for a
// single resolution: field identifier -> current value. It is rebuilt by the
// host on every field change and is read-only from the engine's perspective.
type Context map[string]any

// Get returns the value for a field along with whether the field is present.
func (c Context) Get(fieldID string) (any, bool) {
	value, ok := c[fieldID]
	return value, ok
}

// Clone makes a shallow copy. Handlers clone before handing the context to
// concurrent consumers so callers can keep mutating their own map.
func (c Context) Clone() Context {
	clone := make(Context, len(c))
	for key, value := range c {
		clone[key] = value
	}
	return clone
}
