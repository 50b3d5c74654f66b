package signal_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SEOAgent/internal/domain"
	"SEOAgent/internal/infrastructure/parser"
	"SEOAgent/internal/signal"
)

var dictionary = []string{"telegram", "秘密聊天", "bot", "proxy", "Bot"}

func extract(t *testing.T, html string) (domain.ArticleSignal, error) {
	t.Helper()

	doc, err := parser.Parse(html)
	require.NoError(t, err)

	return signal.NewExtractor(dictionary).Extract(doc, "https://example.com/blog/a", "Rival")
}

func TestExtractFullArticle(t *testing.T) {
	t.Parallel()

	longHeading := strings.Repeat("长", 100)
	html := `<html><head>
	  <title>Document Title</title>
	  <meta name="description" content="Meta description">
	</head><body>
	  <nav>proxy settings</nav>
	  <article>
	    <h1> Telegram 秘密聊天 </h1>
	    <h2>Step one</h2>
	    <h3>` + longHeading + `</h3>
	    <p>Use the BOT wisely.</p>
	  </article>
	</body></html>`

	sig, err := extract(t, html)
	require.NoError(t, err)

	assert.Equal(t, "Telegram 秘密聊天", sig.Title)
	assert.Equal(t, "Meta description", sig.Description)
	assert.Equal(t, []string{"Telegram 秘密聊天", "Step one"}, sig.Headings)
	assert.Equal(t, []string{"telegram", "秘密聊天", "bot"}, sig.Keywords, "body text only comes from the article container")
	assert.Equal(t, "https://example.com/blog/a", sig.SourceURL)
	assert.Equal(t, "Rival", sig.SourceCompetitor)

	wantCount := signal.WordCount("Telegram 秘密聊天 Step one " + longHeading + " Use the BOT wisely.")
	assert.Equal(t, wantCount, sig.WordCount)
}

func TestExtractTitleFallbacks(t *testing.T) {
	t.Parallel()

	sig, err := extract(t, `<html><head><title> From Title Tag </title></head><body><p>x</p></body></html>`)
	require.NoError(t, err)
	assert.Equal(t, "From Title Tag", sig.Title)

	sig, err = extract(t, `<html><head><meta property="og:title" content="From OG"></head><body><p>x</p></body></html>`)
	require.NoError(t, err)
	assert.Equal(t, "From OG", sig.Title)
}

func TestExtractDescriptionFallbacks(t *testing.T) {
	t.Parallel()

	sig, err := extract(t, `<html><head><meta property="og:description" content="OG desc"></head><body><h1>T</h1></body></html>`)
	require.NoError(t, err)
	assert.Equal(t, "OG desc", sig.Description)

	para := strings.Repeat("字", 250)
	sig, err = extract(t, `<html><body><h1>T</h1><p>`+para+`</p></body></html>`)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("字", 200), sig.Description)
}

func TestExtractFallsBackToBodyText(t *testing.T) {
	t.Parallel()

	sig, err := extract(t, `<html><body><h1>T</h1><div>configure a Proxy</div></body></html>`)
	require.NoError(t, err)
	assert.Equal(t, []string{"proxy"}, sig.Keywords)
}

func TestExtractWithoutTitle(t *testing.T) {
	t.Parallel()

	_, err := extract(t, `<html><body><p>no heading anywhere</p></body></html>`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrParseEmpty))
}

func TestKeywordsAreASet(t *testing.T) {
	t.Parallel()

	ex := signal.NewExtractor([]string{"bot", "BOT", "tg"})
	assert.Equal(t, []string{"bot", "tg"}, ex.Keywords("bot bot TG"))
}

func TestWordCountIgnoresWhitespace(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 7, signal.WordCount(" ab c\n\t秘密聊天 "))
}
