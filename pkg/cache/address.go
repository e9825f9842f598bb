package cache

// Decode maps a word address to its (lineIndex, tag) pair for a cache
// with the given block size and number of sets (spec.md §3). Address
// decode always operates on the word address; E20 is word-addressed
// throughout, so there is no byte-to-word conversion here.
func Decode(addr, blockSize, numLines int) (line, tag int) {
	blockID := addr / blockSize
	line = blockID % numLines
	tag = blockID / numLines
	return line, tag
}
