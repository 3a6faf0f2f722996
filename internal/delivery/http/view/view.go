package view

import (
	"bytes"
	"embed"
	"html/template"
	"net/url"
	"strings"
	"unicode"

	"doctor-directory/internal/delivery/dto"
)

//go:embed templates/*.html
var templateFS embed.FS

// RefreshSeconds is how often the page reloads while the directory is loading.
const RefreshSeconds = 1

type SortOption struct {
	Value string
	Label string
}

type ModeOption struct {
	Value string
	Label string
}

var (
	sortOptions = []SortOption{
		{Value: "price", Label: "Price: Low-High"},
		{Value: "experience", Label: "Experience: Most Experience first"},
	}
	modeOptions = []ModeOption{
		{Value: "video", Label: "Video Consultation"},
		{Value: "in-clinic", Label: "In-clinic Consultation"},
		{Value: "all", Label: "All"},
	}
)

// DirectoryPageData is the model handed to the directory template.
type DirectoryPageData struct {
	Directory      *dto.DirectoryResponse
	ToggleAction   string
	ClearAction    string
	SortOptions    []SortOption
	ModeOptions    []ModeOption
	RefreshSeconds int
}

type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("directory.html").
		Funcs(template.FuncMap{"join": strings.Join, "slug": slug}).
		ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl}, nil
}

// RenderDirectory renders the full directory page. query is re-attached to
// form actions so sort, search and mode survive a filter change.
func (r *Renderer) RenderDirectory(directory *dto.DirectoryResponse, query url.Values) ([]byte, error) {
	mode := directory.Mode
	if mode == "" {
		mode = "in-clinic"
	}
	shown := *directory
	shown.Mode = mode

	data := DirectoryPageData{
		Directory:      &shown,
		ToggleAction:   withQuery("/filters/specialities/toggle", query),
		ClearAction:    withQuery("/filters/clear", query),
		SortOptions:    sortOptions,
		ModeOptions:    modeOptions,
		RefreshSeconds: RefreshSeconds,
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "directory.html", data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func withQuery(path string, query url.Values) string {
	if len(query) == 0 {
		return path
	}
	return path + "?" + query.Encode()
}

// slug turns a display name into an id fragment: "General Physician" becomes "general-physician".
func slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return b.String()
}
