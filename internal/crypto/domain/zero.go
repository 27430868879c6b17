package domain

// Zero overwrites each buffer with zeros to clear key material and plaintext from memory.
func Zero(bufs ...[]byte) {
	for _, b := range bufs {
		clear(b)
	}
}
