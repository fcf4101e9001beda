package store

import "log"

// Fallback tries the primary store first and degrades to the local store
// when the primary is unreachable. Durability loss is logged, never
// surfaced: the engines treat their in-memory state as authoritative.
type Fallback struct {
	primary Store
	local   Store
}

func NewFallback(primary, local Store) *Fallback {
	return &Fallback{primary: primary, local: local}
}

func (f *Fallback) Load(key string) ([]byte, error) {
	data, err := f.primary.Load(key)
	if err != nil {
		log.Printf("store: primary load failed for %s, trying local: %v", key, err)
		return f.local.Load(key)
	}
	if data == nil {
		// The record may only exist locally after an offline session.
		return f.local.Load(key)
	}
	return data, nil
}

func (f *Fallback) Save(key string, data []byte) error {
	if err := f.primary.Save(key, data); err != nil {
		log.Printf("store: primary save failed for %s, falling back to local: %v", key, err)
		return f.local.Save(key, data)
	}
	return nil
}
