package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"time"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

type QuoteForm struct {
	FullName string
	Email    string
	Phone    string
	Message  string
}

type PageData struct {
	Cards     []ProductCard
	QuickView *ProductCard
	Cart      CartModel
	Form      QuoteForm

	Toast   string
	ToastMS int64
	Alert   string
	Notice  string
	Year    int
}

type Renderer struct {
	tmpl          *template.Template
	toastDuration time.Duration
}

func NewRenderer(toastDuration time.Duration) (*Renderer, error) {
	tmpl, err := template.New("page").ParseFS(templateFS, "templates/*.gohtml")
	if err != nil {
		return nil, fmt.Errorf("template.ParseFS: %w", err)
	}

	return &Renderer{tmpl: tmpl, toastDuration: toastDuration}, nil
}

func (r *Renderer) Page(w io.Writer, data PageData) error {
	data.ToastMS = r.toastDuration.Milliseconds()
	if data.Year == 0 {
		data.Year = time.Now().Year()
	}

	if err := r.tmpl.ExecuteTemplate(w, "page.gohtml", data); err != nil {
		return fmt.Errorf("tmpl.ExecuteTemplate: %w", err)
	}
	return nil
}

//go:embed assets
var assetFS embed.FS

// Assets serves stylesheets and product images.
func Assets() fs.FS {
	sub, err := fs.Sub(assetFS, "assets")
	if err != nil {
		panic(fmt.Sprintf("embedded assets: %v", err))
	}
	return sub
}
