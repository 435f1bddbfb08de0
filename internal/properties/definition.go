package properties

import "sort"

// Definition is one occurrence of a key in a definitions file.
type Definition struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	File  string `json:"file"`
	Line  int    `json:"line"`
}

// Index groups definitions by key. Every definition stored under a key carries that key.
type Index struct {
	defs map[string][]Definition
}

// NewIndex returns an empty Index.
func NewIndex() *Index {
	return &Index{defs: make(map[string][]Definition)}
}

// Add records a definition under its key.
func (idx *Index) Add(def Definition) {
	idx.defs[def.Key] = append(idx.defs[def.Key], def)
}

// Has reports whether key has at least one definition.
func (idx *Index) Has(key string) bool {
	_, ok := idx.defs[key]
	return ok
}

// Count returns how many times key is defined.
func (idx *Index) Count(key string) int {
	return len(idx.defs[key])
}

// Counts returns the number of definitions per key.
func (idx *Index) Counts() map[string]int {
	counts := make(map[string]int, len(idx.defs))
	for key, defs := range idx.defs {
		counts[key] = len(defs)
	}
	return counts
}

// Definitions returns a copy of the definitions recorded for key.
func (idx *Index) Definitions(key string) []Definition {
	defs := idx.defs[key]
	if defs == nil {
		return nil
	}
	out := make([]Definition, len(defs))
	copy(out, defs)
	return out
}

// Keys returns all defined keys in sorted order.
func (idx *Index) Keys() []string {
	keys := make([]string, 0, len(idx.defs))
	for key := range idx.defs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of distinct keys.
func (idx *Index) Len() int {
	return len(idx.defs)
}
