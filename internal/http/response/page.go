package response

import (
	"encoding/json"
	"html/template"
	"net/http"
	"strings"
)

// Page is the state a client-rendered page boots from.
type Page struct {
	Component string `json:"component"`
	Props     any    `json:"props"`
	URL       string `json:"url"`
}

var shell = template.Must(template.New("shell").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
</head>
<body>
<div id="app" data-page="{{.Data}}"></div>
</body>
</html>
`))

// Render answers with the page JSON when the client asks for it and with
// the HTML shell otherwise.
func Render(w http.ResponseWriter, r *http.Request, component string, props any) {
	page := Page{Component: component, Props: props, URL: r.URL.RequestURI()}
	if WantsJSON(r) {
		w.Header().Set("Vary", "Accept, X-Inertia")
		if r.Header.Get("X-Inertia") != "" {
			w.Header().Set("X-Inertia", "true")
		}
		JSON(w, http.StatusOK, page)
		return
	}
	data, err := json.Marshal(page)
	if err != nil {
		Error(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Vary", "Accept, X-Inertia")
	w.WriteHeader(http.StatusOK)
	_ = shell.Execute(w, struct {
		Title string
		Data  string
	}{Title: pageTitle(component), Data: string(data)})
}

func WantsJSON(r *http.Request) bool {
	if strings.EqualFold(r.Header.Get("X-Inertia"), "true") {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// pageTitle renders "JobOpenings/Show" as "Job Openings".
func pageTitle(component string) string {
	name := component
	if i := strings.Index(name, "/"); i >= 0 {
		name = name[:i]
	}
	var b strings.Builder
	for i, r := range name {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String() + " · Job Tracker"
}
