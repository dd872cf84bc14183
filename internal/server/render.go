package server

import (
	"embed"
	"html/template"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/vanshika/pathfinder/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"distance": formatDistance,
}).ParseFS(templateFS, "templates/*.html"))

type fragmentRow struct {
	Node     domain.NodeID
	Distance float64
	Route    string
}

// formatDistance prints whole numbers without a fraction and +Inf as "inf".
func formatDistance(d float64) string {
	if math.IsInf(d, 1) {
		return "inf"
	}
	return strconv.FormatFloat(d, 'g', -1, 64)
}

func renderFragment(w http.ResponseWriter, res domain.Result) error {
	rows := make([]fragmentRow, 0, len(res.Order))
	for _, node := range res.Order {
		rows = append(rows, fragmentRow{
			Node:     node,
			Distance: res.Distances[node],
			Route:    res.Paths[node].String(),
		})
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	return templates.ExecuteTemplate(w, "result.html", rows)
}

func renderIndex(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return templates.ExecuteTemplate(w, "index.html", nil)
}

// wantsJSON reports whether the caller asked for JSON instead of the HTML fragment.
func wantsJSON(r *http.Request) bool {
	if strings.EqualFold(r.URL.Query().Get("format"), "json") {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(msg))
}
