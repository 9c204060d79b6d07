package products

import "warehouse/models"

// ItemsPerPage is the fixed page size for the session.
const ItemsPerPage = 10

// NoticeLevel distinguishes informational banners from failures.
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeError
)

// Notice is the banner shown above the table. The zero value shows nothing.
type Notice struct {
	Level   NoticeLevel
	Message string
}

func (n Notice) Empty() bool { return n.Message == "" }

// ViewState is the per-session UI state. It only changes through Reduce.
type ViewState struct {
	Query        string
	SortBy       SortMode
	CurrentPage  int
	ItemsPerPage int
	Modal        Modal
	Notice       Notice
}

// NewViewState is the state on mount.
func NewViewState() ViewState {
	return ViewState{
		SortBy:       SortDefault,
		CurrentPage:  1,
		ItemsPerPage: ItemsPerPage,
		Modal:        NoModal(),
	}
}

// Action is a state transition.
type Action interface {
	apply(ViewState) ViewState
}

// Reduce returns the state after applying a. s is not modified.
func Reduce(s ViewState, a Action) ViewState {
	if a == nil {
		return s
	}
	return a.apply(s)
}

// SetQuery replaces the search text. A changed query always restarts at page 1.
type SetQuery struct{ Query string }

func (a SetQuery) apply(s ViewState) ViewState {
	if a.Query != s.Query {
		s.CurrentPage = 1
	}
	s.Query = a.Query
	return s
}

// SetSort selects the ordering; the current page is kept.
type SetSort struct{ Mode SortMode }

func (a SetSort) apply(s ViewState) ViewState {
	s.SortBy = ParseSortMode(string(a.Mode))
	return s
}

// GoToPage moves to a 1-based page. Pages below 1 become 1; pages past the
// end are kept and render an empty window.
type GoToPage struct{ Page int }

func (a GoToPage) apply(s ViewState) ViewState {
	s.CurrentPage = max(1, a.Page)
	return s
}

// OpenModal replaces whatever dialog is open.
type OpenModal struct{ Modal Modal }

func (a OpenModal) apply(s ViewState) ViewState {
	s.Modal = a.Modal
	return s
}

type CloseModal struct{}

func (CloseModal) apply(s ViewState) ViewState {
	s.Modal = NoModal()
	return s
}

type SetNotice struct{ Notice Notice }

func (a SetNotice) apply(s ViewState) ViewState {
	s.Notice = a.Notice
	return s
}

type ClearNotice struct{}

func (ClearNotice) apply(s ViewState) ViewState {
	s.Notice = Notice{}
	return s
}

// Listing is the derived view of the authoritative list for one state.
type Listing struct {
	Items         []models.Product
	Sorted        []models.Product
	FilteredCount int
	TotalCount    int
	TotalPages    int
	PageSize      int
	Bar           PaginationBar
}

// FirstRowNumber is the 1-based table row number of Items[0].
func (l Listing) FirstRowNumber() int {
	return (l.Bar.Current-1)*l.PageSize + 1
}

// Derive runs filter, then sort, then paginate over products.
func Derive(products []models.Product, s ViewState) Listing {
	pageSize := s.ItemsPerPage
	if pageSize <= 0 {
		pageSize = ItemsPerPage
	}
	filtered := FilterProducts(products, s.Query)
	sorted := SortProducts(filtered, s.SortBy)
	total := TotalPages(len(sorted), pageSize)
	return Listing{
		Items:         Paginate(sorted, s.CurrentPage, pageSize),
		Sorted:        sorted,
		FilteredCount: len(filtered),
		TotalCount:    len(products),
		TotalPages:    total,
		PageSize:      pageSize,
		Bar:           newPaginationBar(s.CurrentPage, total),
	}
}
