package domain

// Zero overwrites each byte slice with zeros to clear key material from memory.
func Zero(bufs ...[]byte) {
	for _, b := range bufs {
		for i := range b {
			b[i] = 0
		}
	}
}
