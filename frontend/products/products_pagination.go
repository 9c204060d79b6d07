package products

// maxVisiblePages caps the numeric labels in the pagination bar.
const maxVisiblePages = 5

// PageLabel is one entry of the pagination bar: a page number or an ellipsis.
type PageLabel struct {
	Page     int
	Ellipsis bool
}

// Paginate returns the page-th window of pageSize items (page is 1-based).
// Out-of-range pages yield an empty or partial window, never a panic.
func Paginate[T any](items []T, page, pageSize int) []T {
	if page < 1 || pageSize < 1 {
		return items[:0:0]
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return items[:0:0]
	}
	end := min(start+pageSize, len(items))
	return items[start:end]
}

// TotalPages is ceil(count/pageSize); zero when there is nothing to show.
func TotalPages(count, pageSize int) int {
	if count <= 0 || pageSize <= 0 {
		return 0
	}
	return (count + pageSize - 1) / pageSize
}

// PageLabels compresses 1..total into at most maxVisiblePages numbers around
// current, with ellipsis markers for the gaps. First and last are always shown.
func PageLabels(current, total int) []PageLabel {
	if total <= maxVisiblePages {
		labels := make([]PageLabel, 0, total)
		for i := 1; i <= total; i++ {
			labels = append(labels, PageLabel{Page: i})
		}
		return labels
	}

	labels := []PageLabel{{Page: 1}}
	start := max(2, current-1)
	end := min(total-1, current+1)
	if start > 2 {
		labels = append(labels, PageLabel{Ellipsis: true})
	}
	for i := start; i <= end; i++ {
		labels = append(labels, PageLabel{Page: i})
	}
	if end < total-1 {
		labels = append(labels, PageLabel{Ellipsis: true})
	}
	return append(labels, PageLabel{Page: total})
}

// PaginationBar is everything the pagination controls need to render.
type PaginationBar struct {
	Current      int
	Total        int
	Labels       []PageLabel
	PrevDisabled bool
	NextDisabled bool
}

// Visible reports whether the bar is rendered at all.
func (b PaginationBar) Visible() bool {
	return b.Total > 1
}

func newPaginationBar(current, total int) PaginationBar {
	return PaginationBar{
		Current:      current,
		Total:        total,
		Labels:       PageLabels(current, total),
		PrevDisabled: current <= 1,
		NextDisabled: current >= total,
	}
}
