package topics

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"plist.md":           {Data: []byte("# plist\n\nTemplates use ${NAME} markers.\n")},
		"option-dry-run.txt": {Data: []byte("Dry run logs operations only.\n")},
		"notes.rst":          {Data: []byte("ignored")},
		"nested/modes.txt":   {Data: []byte("classpath or module\n")},
	}
}

func TestLoad(t *testing.T) {
	m, err := Load(testFS(), Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"modes", "option-dry-run", "plist"}, m.List())

	topic, ok := m.Get("plist")
	require.True(t, ok)
	assert.Contains(t, topic.Content, "${NAME}")

	_, ok = m.Get("notes")
	assert.False(t, ok)
}

func TestGet_FlagStyle(t *testing.T) {
	m, err := Load(testFS(), Options{})
	require.NoError(t, err)

	topic, ok := m.Get("--dry-run")
	require.True(t, ok)
	assert.Equal(t, "option-dry-run", topic.Name)
}

type upperRenderer struct{}

func (upperRenderer) Render(content string, ext string) string {
	return ext + ":" + content
}

func TestRender_UsesRenderer(t *testing.T) {
	m, err := Load(testFS(), Options{Renderer: upperRenderer{}})
	require.NoError(t, err)

	topic, _ := m.Get("modes")
	assert.Equal(t, ".txt:classpath or module\n", m.Render(topic))
}

func TestGlamourRenderer_NonMarkdown(t *testing.T) {
	r := NewGlamourRenderer()
	assert.Equal(t, "plain", r.Render("plain", ".txt"))
}

func newRoot(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	root := &cobra.Command{Use: "tool"}
	root.AddCommand(&cobra.Command{Use: "bundle", Short: "Build it", Run: func(*cobra.Command, []string) {}})

	_, err := Initialize(root, testFS(), Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	return root, &buf
}

func TestInitialize_HelpTopics(t *testing.T) {
	root, buf := newRoot(t)
	root.SetArgs([]string{"help", "topics"})
	require.NoError(t, root.Execute())

	out := buf.String()
	assert.Contains(t, out, "General topics:")
	assert.Contains(t, out, "  plist")
	assert.Contains(t, out, "  --dry-run")
	assert.Contains(t, out, "'tool help <topic>'")
}

func TestInitialize_HelpTopic(t *testing.T) {
	root, buf := newRoot(t)
	root.SetArgs([]string{"help", "modes"})
	require.NoError(t, root.Execute())
	assert.Equal(t, "classpath or module\n", buf.String())
}

func TestInitialize_HelpCommand(t *testing.T) {
	root, buf := newRoot(t)
	root.SetArgs([]string{"help", "bundle"})
	require.NoError(t, root.Execute())
	assert.Contains(t, buf.String(), "Build it")
}
