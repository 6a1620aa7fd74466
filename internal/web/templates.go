package web

import (
	"embed"
	"html/template"
	"math"

	"github.com/cookanything/pantry/internal/controller"
	"github.com/cookanything/pantry/internal/demo"
)

//go:embed templates/*.html
var tmplFS embed.FS

var indexTmpl = template.Must(template.New("index.html").Funcs(template.FuncMap{
	"prevPage": func(current int) int { return current - 1 },
	"nextPage": func(current int) int { return min(current, math.MaxInt-1) + 1 },
}).ParseFS(tmplFS, "templates/index.html"))

type pageData struct {
	View            controller.View
	Sort            string
	ScrollThreshold int

	DemoLead string
	DemoLink string
	DemoURL  string
}

func newPageData(v controller.View, scrollThreshold int) pageData {
	if scrollThreshold <= 0 {
		scrollThreshold = 10
	}
	return pageData{
		View:            v,
		Sort:            string(v.Query.Sort),
		ScrollThreshold: scrollThreshold,
		DemoLead:        demo.LeadText,
		DemoLink:        demo.LinkText,
		DemoURL:         demo.LicenseURL,
	}
}
