package view

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine(t *testing.T) {
	engine, err := NewEngine()
	assert.NoError(t, err, "Templates should parse without error")
	assert.NotNil(t, engine)
}

func TestRenderPageShell(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	err = engine.Render(rec, "page.html", TemplateData{Title: "Employees", CurrentPath: "/employees", Username: "scott"})
	require.NoError(t, err)
	assert.Contains(t, rec.Body.String(), "Employees")
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
}
