package http_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	pkghttp "github.com/BradenHooton/gestaopro/pkg/http"
	"github.com/stretchr/testify/assert"
)

func TestWriteInternalError_HidesDetailsByDefault(t *testing.T) {
	w := httptest.NewRecorder()

	pkghttp.WriteInternalError(w, errors.New("dial tcp 10.0.0.5:5432: connection refused"), false)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.NotContains(t, w.Body.String(), "10.0.0.5")
}

func TestWriteInternalError_ShowsEscapedDetailsInDebug(t *testing.T) {
	w := httptest.NewRecorder()

	pkghttp.WriteInternalError(w, errors.New("bad <query>"), true)

	assert.Contains(t, w.Body.String(), "bad &lt;query&gt;")
}

func TestWriteNotFound(t *testing.T) {
	w := httptest.NewRecorder()

	pkghttp.WriteNotFound(w)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Página não encontrada")
}
