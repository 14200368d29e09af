package buf

// Fill writes a position-dependent byte pattern derived from seed into b.
// Distinct seeds give distinct patterns for any block longer than one byte.
func Fill(b []byte, seed byte) {
	for i := range b {
		b[i] = patternByte(seed, i)
	}
}

// Verify returns the index of the first byte of b that does not match the
// pattern written by Fill with the same seed, or -1 if all bytes match.
func Verify(b []byte, seed byte) int {
	for i := range b {
		if b[i] != patternByte(seed, i) {
			return i
		}
	}
	return -1
}

func patternByte(seed byte, i int) byte {
	return seed ^ byte(i) ^ byte(i>>8)*31
}
