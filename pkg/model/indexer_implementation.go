package model

type indexerImplementation struct {
	slots      uint64
	tokenWidth uint64
}

func (indexer *indexerImplementation) Index(group, slot uint64) uint64 {
	return indexer.tokenWidth*slot + indexer.tokenWidth*indexer.slots*group
}

func (indexer *indexerImplementation) Attributes(offset uint64) (group, slot uint64) {
	offset = offset / indexer.tokenWidth
	slot = offset % indexer.slots
	offset = offset / indexer.slots

	group = offset

	return group, slot
}
