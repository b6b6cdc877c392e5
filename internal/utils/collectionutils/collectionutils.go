package collectionutils

// Associate indexes items by the key/value pair produced by transform. Later items win on key clashes.
func Associate[T any, K comparable, V any](items []T, transform func(T) (K, V)) map[K]V {
	m := make(map[K]V, len(items))
	for _, item := range items {
		k, v := transform(item)
		m[k] = v
	}

	return m
}

// GroupBy buckets items by keySelector, preserving input order inside each bucket.
func GroupBy[T any, K comparable](items []T, keySelector func(T) K) map[K][]T {
	m := make(map[K][]T)
	for _, item := range items {
		k := keySelector(item)
		m[k] = append(m[k], item)
	}

	return m
}

func GetOrDefault[K comparable, T any](m map[K]T, key K, defaultValue T) T {
	if v, ok := m[key]; ok {
		return v
	}
	return defaultValue
}

// Contains reports whether target is in items.
func Contains[T comparable](items []T, target T) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}
