package http

import (
	"fmt"
	"html"
	"net/http"
)

// ErrorPage is the body written for requests that cannot render the login view
type ErrorPage struct {
	Status  int
	Title   string
	Message string
	Details string // Only shown when debug output is enabled
}

// WriteErrorPage writes a minimal HTML error page with the given status code
func WriteErrorPage(w http.ResponseWriter, page ErrorPage) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(page.Status)

	details := ""
	if page.Details != "" {
		details = fmt.Sprintf("<pre>%s</pre>", html.EscapeString(page.Details))
	}

	_, _ = fmt.Fprintf(w,
		"<!DOCTYPE html>\n<html lang=\"pt-br\"><head><meta charset=\"utf-8\"><title>%s</title></head>"+
			"<body><h1>%s</h1><p>%s</p>%s</body></html>\n",
		html.EscapeString(page.Title),
		html.EscapeString(page.Title),
		html.EscapeString(page.Message),
		details,
	)
}

// Common error writers for consistency

func WriteNotFound(w http.ResponseWriter) {
	WriteErrorPage(w, ErrorPage{
		Status:  http.StatusNotFound,
		Title:   "404",
		Message: "Página não encontrada",
	})
}

func WriteTooManyRequests(w http.ResponseWriter) {
	WriteErrorPage(w, ErrorPage{
		Status:  http.StatusTooManyRequests,
		Title:   "429",
		Message: "Muitas requisições. Aguarde um momento e tente novamente.",
	})
}

// WriteInternalError writes the generic failure page. details is dropped unless debug is set.
func WriteInternalError(w http.ResponseWriter, err error, debug bool) {
	page := ErrorPage{
		Status:  http.StatusInternalServerError,
		Title:   "Erro",
		Message: "Falha ao processar a requisição. Tente novamente mais tarde.",
	}
	if debug && err != nil {
		page.Details = err.Error()
	}
	WriteErrorPage(w, page)
}
