package query

// tokenIndex maps a normalized token to the original-case token.
// Keys remember first insertion; values are last-write-wins.
type tokenIndex struct {
	keys   []string
	values map[string]string
}

func newTokenIndex() *tokenIndex {
	return &tokenIndex{values: make(map[string]string)}
}

func (i *tokenIndex) put(key, value string) {
	if _, ok := i.values[key]; !ok {
		i.keys = append(i.keys, key)
	}
	i.values[key] = value
}

func (i *tokenIndex) has(key string) bool {
	_, ok := i.values[key]
	return ok
}

func (i *tokenIndex) size() int {
	return len(i.keys)
}
