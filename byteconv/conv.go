// Package byteconv formats and joins the 8 and 16 bit words of the machine.
package byteconv

const hextableUpper = "0123456789ABCDEF"

// Hex returns the lowest n hex digits of v in upper case, zero padded. n is
// clamped to the four digits of a word.
func Hex(v uint16, n int) string {
	n = min(max(n, 1), 4)

	dst := make([]byte, n)
	for j := n - 1; j >= 0; j-- {
		dst[j] = hextableUpper[v&0x0f]
		v >>= 4
	}
	return string(dst)
}

// Word joins a high and a low byte into a big endian word.
func Word(hi, lo byte) uint16 {
	return uint16(hi)<<8 | uint16(lo)
}

// Split is the inverse of Word.
func Split(w uint16) (hi, lo byte) {
	return byte(w >> 8), byte(w)
}
