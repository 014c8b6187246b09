package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHeadingsAndLists(t *testing.T) {
	r := NewRenderer()

	out, err := r.Render("### 核心精華\n* point one\n* point two")
	require.NoError(t, err)
	assert.Contains(t, out, "<h3>核心精華</h3>")
	assert.Contains(t, out, "<li>point one</li>")
}

func TestRenderHardWraps(t *testing.T) {
	r := NewRenderer()

	out, err := r.Render("line one\nline two")
	require.NoError(t, err)
	assert.Contains(t, out, "<br>")
}

func TestRenderGFMTable(t *testing.T) {
	r := NewRenderer()

	out, err := r.Render("| a | b |\n|---|---|\n| 1 | 2 |")
	require.NoError(t, err)
	assert.Contains(t, out, "<table>")
}
