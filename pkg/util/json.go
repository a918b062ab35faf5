package util

// Get returns obj[key] if obj is a json object which has key and its value is not null
func Get(obj interface{}, key string) (interface{}, bool) {
	m, ok := obj.(map[string]interface{})
	if !ok {
		return nil, false
	}
	value, exists := m[key]
	if !exists || value == nil {
		return nil, false
	}
	return value, true
}

// ChainedGet travels the nested json objects with keys and returns the last value.
// The second return value is false if any of the keys is missing or null.
func ChainedGet(obj interface{}, keys ...string) (interface{}, bool) {
	current := obj
	for _, key := range keys {
		var ok bool
		current, ok = Get(current, key)
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// ChainedGetString is ChainedGet which expects a non-empty string at the end of the chain.
// def is returned otherwise.
func ChainedGetString(obj interface{}, def string, keys ...string) string {
	value, _ := ChainedGet(obj, keys...)
	if s, ok := value.(string); ok && s != "" {
		return s
	}
	return def
}

// ChainedGetMap is ChainedGet which expects a json object at the end of the chain
func ChainedGetMap(obj interface{}, keys ...string) (map[string]interface{}, bool) {
	value, _ := ChainedGet(obj, keys...)
	m, ok := value.(map[string]interface{})
	return m, ok
}

// ChainedGetSlice is ChainedGet which expects a json array at the end of the chain
func ChainedGetSlice(obj interface{}, keys ...string) ([]interface{}, bool) {
	value, _ := ChainedGet(obj, keys...)
	s, ok := value.([]interface{})
	return s, ok
}

// ChainedGetInt is ChainedGet which expects a json number at the end of the chain
func ChainedGetInt(obj interface{}, keys ...string) (int64, bool) {
	value, _ := ChainedGet(obj, keys...)
	f, ok := value.(float64)
	return int64(f), ok
}
