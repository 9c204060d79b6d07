package help

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"warehouse/frontend/products"
	"warehouse/frontend/shared/html"
	"warehouse/frontend/shared/nav"
)

type PageData struct {
	Top      nav.TopNavData
	Sections []Section
}

type Section struct {
	Title string
	Items []string
}

func sections() []Section {
	sortItems := make([]string, 0, len(products.SortModes))
	for _, mode := range products.SortModes[1:] {
		sortItems = append(sortItems, mode.Label()+".")
	}
	sortItems = append(sortItems, "Products without a price or quantity sort as zero. Ties keep the list order.")

	return []Section{
		{
			Title: "Searching",
			Items: []string{
				"Search matches name, SKU or location, ignoring case.",
				"Changing the search returns to the first page.",
			},
		},
		{Title: "Sorting", Items: sortItems},
		{
			Title: "Editing",
			Items: []string{
				"Add Product opens an empty form; every field is optional.",
				"Prices are decimal numbers shown with two decimals. Quantities are whole numbers.",
				"Deleting a product with stock on hand shows a warning before you confirm.",
				"Refresh reloads the list from the warehouse service.",
			},
		},
		{
			Title: "Labels and export",
			Items: []string{
				"Label prints a shelf label with a Code 128 barcode of the SKU.",
				"Export CSV downloads every product matching the current search, in the current order.",
			},
		},
	}
}

func HelpPage(data PageData) templ.Component {
	return html.Layout("Help", data.Top, templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<h1>Help</h1>`)
		for _, s := range data.Sections {
			b.WriteString(`<section class="help-section"><h2>` + templ.EscapeString(s.Title) + `</h2><ul>`)
			for _, item := range s.Items {
				b.WriteString(`<li>` + templ.EscapeString(item) + `</li>`)
			}
			b.WriteString(`</ul></section>`)
		}
		_, err := io.WriteString(w, b.String())
		return err
	}))
}
