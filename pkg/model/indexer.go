package model

// indexer interface is designed to give the bit offset of a (group, slot) token and vice versa
type indexer interface {
	// Returns the offset of the first bit of the token scheduled for group at slot
	Index(group, slot uint64) uint64
	// Returns the group and slot whose token contains the bit at offset
	Attributes(offset uint64) (group uint64, slot uint64)
}

func newIndexer(slots, tokenWidth uint64) indexer {
	return &indexerImplementation{
		slots:      slots,
		tokenWidth: tokenWidth,
	}
}
