package config

// Fallback the policy applied when a key is missing from a Mapping.
type Fallback int

const (
	// FallbackDrop an unmapped key yields nothing.
	FallbackDrop Fallback = iota
	// FallbackRaw an unmapped key yields the key itself.
	FallbackRaw
)

// Mapping a finite table translating a source value into a destination value.
type Mapping map[string]string

// Resolve translates key according to the table and the fallback policy.
// The boolean is false only when the key is dropped.
func (m Mapping) Resolve(key string, fb Fallback) (string, bool) {
	if v, ok := m[key]; ok {
		return v, true
	}

	if fb == FallbackRaw {
		return key, true
	}

	return "", false
}
