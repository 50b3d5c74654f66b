package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHTML = `
<html>
  <head>
    <title>Page Title</title>
    <meta name="description" content="Meta description">
  </head>
  <body>
    <h1>First</h1>
    <h2>Second</h2>
    <p>Paragraph</p>
    <h3>Third</h3>
  </body>
</html>`

func TestFindFirst(t *testing.T) {
	t.Parallel()

	doc, err := Parse(sampleHTML)
	require.NoError(t, err)

	title, ok := doc.FindFirst("title")
	require.True(t, ok)
	assert.Equal(t, "Page Title", title.Text())

	meta, ok := doc.FindFirst(`meta[name="description"]`)
	require.True(t, ok)
	content, ok := meta.Attr("content")
	require.True(t, ok)
	assert.Equal(t, "Meta description", content)

	_, ok = doc.FindFirst("article")
	assert.False(t, ok)
}

func TestFindAllKeepsDocumentOrder(t *testing.T) {
	t.Parallel()

	doc, err := Parse(sampleHTML)
	require.NoError(t, err)

	nodes := doc.FindAll("h3, h1, h2")
	texts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		texts = append(texts, n.Text())
	}
	assert.Equal(t, []string{"First", "Second", "Third"}, texts)

	_, ok := nodes[0].Attr("href")
	assert.False(t, ok)
}
