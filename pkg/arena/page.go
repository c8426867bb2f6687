package arena

// pageHeaderSize mirrors the next-page link that leads each backing
// block. The first pageHeaderSize bytes of every page are reserved
// and never handed out, so the usable region of a page is always
// pageSize - pageHeaderSize bytes.
const pageHeaderSize = 8

// page is one fixed-size backing block in the arena's chain. Every
// page of an arena has the same size, so bounds are plain offsets
// into buf rather than stored fields.
type page struct {
	next *page
	buf  []byte
}

func (p *page) start() int {
	return pageHeaderSize
}

func (p *page) end() int {
	return len(p.buf)
}
