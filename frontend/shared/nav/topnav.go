package nav

// Link is one entry of the top navigation bar.
type Link struct {
	Label  string
	Href   string
	Active bool
}

// TopNavData is shared with page renderers.
type TopNavData struct {
	Brand string
	Links []Link
}

// BuildTopNavData marks the link whose Href equals activePath.
func BuildTopNavData(activePath string) TopNavData {
	links := []Link{
		{Label: "Products", Href: "/products"},
		{Label: "Export CSV", Href: "/products/export.csv"},
		{Label: "Help", Href: "/help"},
	}
	for i := range links {
		links[i].Active = links[i].Href == activePath
	}
	return TopNavData{Brand: "Warehouse", Links: links}
}
