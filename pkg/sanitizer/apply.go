package sanitizer

// Apply runs value through transforms in order.
func Apply[T any](value T, transforms ...func(T) T) T {
	for _, transform := range transforms {
		value = transform(value)
	}
	return value
}

// Compose returns a reusable pipeline of transforms.
func Compose[T any](transforms ...func(T) T) func(T) T {
	return func(value T) T {
		return Apply(value, transforms...)
	}
}

// Fields returns a copy of rec with the string values of the listed fields
// transformed. Other fields and non-string values are copied as is.
func Fields[M ~map[string]any](rec M, rules map[string]func(string) string) M {
	out := make(M, len(rec))
	for k, v := range rec {
		if s, ok := v.(string); ok {
			if fn, ok := rules[k]; ok {
				v = fn(s)
			}
		}
		out[k] = v
	}
	return out
}
