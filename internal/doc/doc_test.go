package doc

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() *Element {
	root := New("scene")
	root.Set("id", "level1")
	layer := root.Add("layer")
	layer.SetFloat("scale", 1.5)
	layer.SetInt("count", 3)
	layer.SetBool("visible", true)
	layer.Text = "1,2,3"
	return root
}

func TestElementTypedAttributes(t *testing.T) {
	el := New("component")
	el.SetFloat("x", 12.25)
	el.SetInt("n", -4)
	el.SetBool("active", true)
	el.Set("bad", "not-a-number")

	x, ok := el.Float("x")
	require.True(t, ok)
	assert.Equal(t, float32(12.25), x)

	n, ok := el.Int("n")
	require.True(t, ok)
	assert.Equal(t, -4, n)

	active, ok := el.Bool("active")
	require.True(t, ok)
	assert.True(t, active)

	_, ok = el.Float("bad")
	assert.False(t, ok, "malformed float should report missing")
	_, ok = el.Int("missing")
	assert.False(t, ok)
	assert.Equal(t, "fallback", el.String("missing", "fallback"))
}

func TestElementChildren(t *testing.T) {
	root := New("entity")
	a := root.Add("component")
	root.Add("note")
	b := root.Add("component")

	assert.Equal(t, []*Element{a, b}, root.ChildrenNamed("component"))
	assert.Same(t, a, root.Child("component"))
	assert.Nil(t, root.Child("missing"))

	root.Remove(a)
	assert.Equal(t, []*Element{b}, root.ChildrenNamed("component"))
}

func TestYAMLRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeYAML(&buf, sampleTree()))

	decoded, err := DecodeYAML(&buf)
	require.NoError(t, err)
	assert.Equal(t, sampleTree(), decoded)
}

func TestJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeJSON(&buf, sampleTree()))

	decoded, err := DecodeJSON(&buf)
	require.NoError(t, err)
	assert.Equal(t, sampleTree(), decoded)
}

func TestDecodeRejectsEmptyDocument(t *testing.T) {
	_, err := DecodeYAML(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyDocument)

	_, err = DecodeJSON(strings.NewReader(`{"attrs":{"a":"b"}}`))
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestSaveLoadByExtension(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"scene.yaml", "scene.json"} {
		path := filepath.Join(dir, name)
		require.NoError(t, Save(path, sampleTree()))

		loaded, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, sampleTree(), loaded)
	}

	err := Save(filepath.Join(dir, "scene.txt"), sampleTree())
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
