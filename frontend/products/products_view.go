package products

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"warehouse/frontend/shared/html"
)

const pageTitle = "Warehouse Management"

// ProductsPage renders the full inventory screen.
func ProductsPage(data PageData) templ.Component {
	return html.Layout(pageTitle, data.Top, templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, renderProductsBody(data.Snapshot))
		return err
	}))
}

func renderProductsBody(snap Snapshot) string {
	var b strings.Builder
	b.WriteString(renderNotice(snap.State.Notice))
	if snap.Stale {
		b.WriteString(`<div class="alert alert-warning" data-stale="true">The list may be out of date.` +
			postButton("/products/refresh", "Refresh", "btn btn-sm") + `</div>`)
	}
	b.WriteString(renderHeader(snap))
	b.WriteString(renderTable(snap.Listing))
	b.WriteString(renderPagination(snap.Listing.Bar))
	b.WriteString(renderModal(snap.State.Modal))
	return b.String()
}

func renderNotice(n Notice) string {
	if n.Empty() {
		return ""
	}
	class := "alert alert-info"
	if n.Level == NoticeError {
		class = "alert alert-error"
	}
	return `<div class="` + class + `" role="status">` + esc(n.Message) + `</div>`
}

func renderHeader(snap Snapshot) string {
	var b strings.Builder
	b.WriteString(`<div class="header-container"><div class="app-title"><h1>` + pageTitle + `</h1></div>`)
	b.WriteString(`<div class="header-controls"><div class="item-count">`)
	fmt.Fprintf(&b, "%d of %d items listed", snap.Listing.FilteredCount, snap.Listing.TotalCount)
	b.WriteString(`</div><div class="table-toolbar">`)
	b.WriteString(postButton("/products/modal/add", "Add Product", "btn"))
	b.WriteString(postButton("/products/refresh", "Refresh", "btn btn-ghost"))
	b.WriteString(`</div></div><div class="header-sort">`)

	b.WriteString(`<form method="post" action="/products/search" class="search-box">`)
	b.WriteString(`<input type="text" name="query" placeholder="Search name, SKU, or location…" aria-label="Search products" value="` +
		esc(snap.State.Query) + `" autofocus>`)
	b.WriteString(`<button class="btn btn-sm" type="submit">Search</button></form>`)

	b.WriteString(`<form method="post" action="/products/sort" class="sort-box">`)
	b.WriteString(`<select name="sort" class="sort-select" aria-label="Sort products" onchange="this.form.submit()">`)
	for _, mode := range SortModes {
		selected := ""
		if mode == snap.State.SortBy {
			selected = " selected"
		}
		b.WriteString(`<option value="` + esc(string(mode)) + `"` + selected + `>` + esc(mode.Label()) + `</option>`)
	}
	b.WriteString(`</select><noscript><button class="btn btn-sm" type="submit">Sort</button></noscript></form>`)
	b.WriteString(`</div></div>`)
	return b.String()
}

func renderTable(l Listing) string {
	var b strings.Builder
	b.WriteString(`<table class="product-table"><thead><tr>` +
		`<th>#</th><th>Name</th><th>SKU</th><th>Location</th><th>Price</th><th>Quantity</th><th>Actions</th>` +
		`</tr></thead><tbody>`)
	rows := newProductRows(l)
	if len(rows) == 0 {
		b.WriteString(`<tr><td colspan="7" class="empty">No products found</td></tr>`)
	}
	for _, row := range rows {
		id := strconv.FormatInt(row.ID, 10)
		b.WriteString(`<tr data-product-id="` + id + `">`)
		b.WriteString(`<td>` + strconv.Itoa(row.Number) + `</td>`)
		b.WriteString(`<td>` + esc(row.Name) + `</td><td>` + esc(row.SKU) + `</td><td>` + esc(row.Location) + `</td>`)
		b.WriteString(`<td class="num">` + esc(row.Price) + `</td><td class="num">` + esc(row.Quantity) + `</td>`)
		b.WriteString(`<td class="actions">`)
		b.WriteString(postButton("/products/"+id+"/modal/details", "Details", "btn btn-sm"))
		b.WriteString(postButton("/products/"+id+"/modal/edit", "Edit", "btn btn-sm"))
		b.WriteString(postButton("/products/"+id+"/modal/delete", "Delete", "btn btn-sm btn-error"))
		b.WriteString(`<a class="btn btn-sm" href="/products/` + id + `/label.pdf" target="_blank">Label</a>`)
		b.WriteString(`</td></tr>`)
	}
	b.WriteString(`</tbody></table>`)
	return b.String()
}

func renderPagination(bar PaginationBar) string {
	if !bar.Visible() {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<nav class="pagination" aria-label="Pagination">`)
	b.WriteString(pageButton(bar.Current-1, "Previous", "pagination-btn", bar.PrevDisabled))
	for i, label := range bar.Labels {
		if label.Ellipsis {
			b.WriteString(`<span class="pagination-ellipsis" data-index="` + strconv.Itoa(i) + `">...</span>`)
			continue
		}
		class := "pagination-btn"
		if label.Page == bar.Current {
			class += " active"
		}
		b.WriteString(pageButton(label.Page, strconv.Itoa(label.Page), class, false))
	}
	b.WriteString(pageButton(bar.Current+1, "Next", "pagination-btn", bar.NextDisabled))
	b.WriteString(`</nav>`)
	return b.String()
}

func pageButton(page int, text, class string, disabled bool) string {
	if disabled {
		return `<button class="` + class + `" type="button" disabled>` + esc(text) + `</button>`
	}
	return `<form method="post" action="/products/page" class="inline-form">` +
		`<input type="hidden" name="page" value="` + strconv.Itoa(page) + `">` +
		`<button class="` + class + `" type="submit">` + esc(text) + `</button></form>`
}

func renderModal(m Modal) string {
	if !m.Open() {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<dialog class="modal" open data-modal="` + m.Kind.String() + `"><div class="modal-box">`)
	b.WriteString(`<div class="modal-header"><h3>` + esc(m.Title()) + `</h3>`)
	b.WriteString(postButton("/products/modal/close", "×", "btn btn-sm btn-circle"))
	b.WriteString(`</div>`)

	switch m.Kind {
	case ModalAdd:
		b.WriteString(renderProductForm("/products", m.Form, "Add"))
	case ModalEdit:
		b.WriteString(renderProductForm("/products/"+strconv.FormatInt(m.Target.ID, 10), m.Form, "Save"))
	case ModalDetails:
		b.WriteString(renderDetails(m))
	case ModalConfirmDelete:
		b.WriteString(renderConfirmDelete(m))
	}
	b.WriteString(`</div></dialog>`)
	return b.String()
}

func renderProductForm(action string, f ProductForm, submit string) string {
	var b strings.Builder
	b.WriteString(`<form method="post" action="` + esc(action) + `" class="product-form">`)
	b.WriteString(formField("Name", "name", "text", f.Name, ""))
	b.WriteString(formField("SKU", "sku", "text", f.SKU, ""))
	b.WriteString(formField("Location", "location", "text", f.Location, ""))
	b.WriteString(formField("Price", "price", "text", f.Price, `inputmode="decimal"`))
	b.WriteString(formField("Quantity", "quantity", "number", f.Quantity, `step="1"`))
	b.WriteString(`<div class="modal-action"><button class="btn btn-primary" type="submit">` + esc(submit) + `</button>`)
	b.WriteString(`<button class="btn" type="submit" formaction="/products/modal/close">Cancel</button></div>`)
	b.WriteString(`</form>`)
	return b.String()
}

func formField(label, name, inputType, value, extra string) string {
	if extra != "" {
		extra = " " + extra
	}
	return `<label class="form-control"><span class="label-text">` + esc(label) + `</span>` +
		`<input class="input" type="` + inputType + `" name="` + name + `" value="` + esc(value) + `"` + extra + `></label>`
}

func renderDetails(m Modal) string {
	p := m.Target
	rows := [][2]string{
		{"ID", strconv.FormatInt(p.ID, 10)},
		{"Name", orDash(p.NameOrEmpty())},
		{"SKU", orDash(p.SKUOrEmpty())},
		{"Location", orDash(p.LocationOrEmpty())},
		{"Price", formatPrice(p)},
		{"Quantity", formatQuantity(p)},
	}
	var b strings.Builder
	b.WriteString(`<dl class="product-details">`)
	for _, row := range rows {
		b.WriteString(`<dt>` + row[0] + `</dt><dd>` + esc(row[1]) + `</dd>`)
	}
	b.WriteString(`</dl>`)
	return b.String()
}

func renderConfirmDelete(m Modal) string {
	p := m.Target
	var b strings.Builder
	b.WriteString(`<p>The product ` + esc(p.NameOrEmpty()) + ` (` + esc(p.SKUOrEmpty()) + `) will be deleted permanently.</p>`)
	if warning := DeleteWarning(p); warning != "" {
		b.WriteString(`<p class="text-error">` + esc(warning) + `</p>`)
	}
	b.WriteString(`<div class="modal-action">`)
	b.WriteString(postButton("/products/"+strconv.FormatInt(p.ID, 10)+"/delete", "Yes", "btn btn-secondary"))
	b.WriteString(postButton("/products/modal/close", "No", "btn btn-primary"))
	b.WriteString(`</div>`)
	return b.String()
}

// postButton renders a one-button form.
func postButton(action, text, class string) string {
	return `<form method="post" action="` + esc(action) + `" class="inline-form">` +
		`<button class="` + class + `" type="submit">` + esc(text) + `</button></form>`
}

func esc(s string) string {
	return templ.EscapeString(s)
}
