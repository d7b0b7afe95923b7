package services

// DefaultPageSize is the number of episodes shown per page.
const DefaultPageSize = 5

// Pager is a client-side page index over an already fetched collection.
type Pager struct {
	Page int
	Size int
}

func NewPager(size int) *Pager {
	if size <= 0 {
		size = DefaultPageSize
	}
	return &Pager{Size: size}
}

// size is Size, or DefaultPageSize for a zero or negative Size.
func (p *Pager) size() int {
	if p.Size <= 0 {
		return DefaultPageSize
	}
	return p.Size
}

// Bounds returns from = page*size and to = min((page+1)*size, total).
// When page is past the end, from > to.
func (p *Pager) Bounds(total int) (from, to int) {
	size := p.size()
	from = p.Page * size
	to = min((p.Page+1)*size, total)
	return from, to
}

// Window is Bounds made safe for slicing a collection of length total.
func (p *Pager) Window(total int) (from, to int) {
	from, to = p.Bounds(total)
	if total < 0 {
		total = 0
	}
	from = min(max(from, 0), total)
	to = max(min(to, total), from)
	return from, to
}

func (p *Pager) HasPrev() bool {
	return p.Page > 0
}

func (p *Pager) HasNext(total int) bool {
	_, to := p.Bounds(total)
	return to < total
}

// Next advances one page unless the last page is already showing.
func (p *Pager) Next(total int) bool {
	if !p.HasNext(total) {
		return false
	}
	p.Page++
	return true
}

// Prev goes back one page unless on the first one.
func (p *Pager) Prev() bool {
	if !p.HasPrev() {
		return false
	}
	p.Page--
	return true
}

// Clamp pulls the page index back into [0, last page for total].
func (p *Pager) Clamp(total int) {
	last := 0
	if total > 0 {
		last = (total - 1) / p.size()
	}
	p.Page = min(max(p.Page, 0), last)
}

// Pages is the number of pages needed for total items (at least 1).
func (p *Pager) Pages(total int) int {
	if total <= 0 {
		return 1
	}
	size := p.size()
	return (total + size - 1) / size
}

// Slice returns the visible window of items.
func Slice[T any](p *Pager, items []T) []T {
	from, to := p.Window(len(items))
	return items[from:to]
}
