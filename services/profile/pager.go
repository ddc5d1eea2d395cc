package profile

// Pager decides when an infinite list should request its next page.
type Pager struct {
	PageSize int
	// Threshold is how many unrendered items may remain before loading more.
	Threshold int

	page     int
	lastSize int
	loading  bool
}

func NewPager(pageSize int) *Pager {
	return &Pager{PageSize: pageSize, Threshold: 2, lastSize: pageSize}
}

// NextPage returns the page to request and marks a load in progress.
func (p *Pager) NextPage() int {
	p.loading = true
	return p.page
}

// Loaded records the size of the page that just arrived.
func (p *Pager) Loaded(n int) {
	p.loading = false
	p.lastSize = n
	p.page++
}

// Failed clears the in-progress mark without advancing.
func (p *Pager) Failed() {
	p.loading = false
}

// Exhausted reports whether the last page was short.
func (p *Pager) Exhausted() bool {
	return p.lastSize < p.PageSize
}

// ShouldLoadMore is true when fewer than Threshold loaded items remain below
// lastVisibleIndex and more pages may exist.
func (p *Pager) ShouldLoadMore(lastVisibleIndex, loaded int) bool {
	if p.loading || p.Exhausted() {
		return false
	}
	remaining := loaded - 1 - lastVisibleIndex
	return remaining < p.Threshold
}
