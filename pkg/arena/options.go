package arena

type Options struct {
	// AvgAllocSize hints the typical allocation size so that one page
	// amortizes across many same-sized objects. Zero means no hint and
	// pages are sized to TargetPageSize.
	AvgAllocSize int

	// Source supplies and releases page backing blocks. Nil means
	// ordinary heap backing.
	Source Source
}
