package parse

// Hash is Jenkins' one-at-a-time hash of key's bytes. Asset tables use it to
// key sprites and sounds by name.
func Hash(key string) uint32 {
	var h uint32
	for i := 0; i < len(key); i++ {
		h += uint32(key[i])
		h += h << 10
		h ^= h >> 6
	}
	h += h << 3
	h ^= h >> 11
	h += h << 15
	return h
}
