package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	r, err := NewRenderer(&buf)
	require.NoError(t, err)

	err = r.Render("# Hello\n\nWorld")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Hello")
	assert.Contains(t, buf.String(), "World")
}

func TestRenderStreamAccumulates(t *testing.T) {
	var buf bytes.Buffer
	r, err := NewRenderer(&buf)
	require.NoError(t, err)

	acc, err := r.RenderStream("", "Hello ", false)
	require.NoError(t, err)
	assert.Equal(t, "Hello ", acc)
	assert.Empty(t, buf.String())
}

func TestRenderStreamFlush(t *testing.T) {
	var buf bytes.Buffer
	r, err := NewRenderer(&buf)
	require.NoError(t, err)

	acc, err := r.RenderStream("Hello ", "World", true)
	require.NoError(t, err)
	assert.Empty(t, acc)
	assert.Contains(t, buf.String(), "Hello")
	assert.Contains(t, buf.String(), "World")
}

func TestRenderStreamBlockBoundary(t *testing.T) {
	var buf bytes.Buffer
	r, err := NewRenderer(&buf)
	require.NoError(t, err)

	acc, err := r.RenderStream("A paragraph.", "\n\nMore", false)
	require.NoError(t, err)
	assert.Empty(t, acc)
	assert.Contains(t, buf.String(), "paragraph")
}

func TestRenderStreamEmptyFlush(t *testing.T) {
	var buf bytes.Buffer
	r, err := NewRenderer(&buf)
	require.NoError(t, err)

	acc, err := r.RenderStream("", "", true)
	require.NoError(t, err)
	assert.Empty(t, acc)
	assert.Empty(t, buf.String())
}

func TestNewRendererNilWriter(t *testing.T) {
	r, err := NewRenderer(nil)
	require.NoError(t, err)
	assert.NotNil(t, r)
}
