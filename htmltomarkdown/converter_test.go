package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/newsdesk"
	"github.com/fwojciec/newsdesk/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Converter implements newsdesk.Converter at compile time.
var _ newsdesk.Converter = (*htmltomarkdown.Converter)(nil)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("separates paragraphs with blank lines", func(t *testing.T) {
		t.Parallel()

		html := `<p>第一段。</p><p>第二段。</p>`

		md, err := htmltomarkdown.NewConverter().Convert(html)

		require.NoError(t, err)
		assert.Equal(t, "第一段。\n\n第二段。", md)
	})

	t.Run("flattens links to their text", func(t *testing.T) {
		t.Parallel()

		html := `<p>詳見<a href="https://example.com/report">完整報告</a>內容。</p>`

		md, err := htmltomarkdown.NewConverter().Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "詳見完整報告內容。")
		assert.NotContains(t, md, "https://example.com")
	})

	t.Run("drops images and figures", func(t *testing.T) {
		t.Parallel()

		html := `<figure><img src="a.jpg" alt="照片"><figcaption>圖說</figcaption></figure><p>正文。</p>`

		md, err := htmltomarkdown.NewConverter().Convert(html)

		require.NoError(t, err)
		assert.Equal(t, "正文。", md)
	})

	t.Run("keeps headings and emphasis", func(t *testing.T) {
		t.Parallel()

		html := `<h2>小標</h2><p><strong>重點</strong>在此。</p>`

		md, err := htmltomarkdown.NewConverter().Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "## 小標")
		assert.Contains(t, md, "**重點**")
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		_, err := htmltomarkdown.NewConverter().Convert("   ")

		require.Error(t, err)
		assert.Equal(t, newsdesk.EINVALID, newsdesk.ErrorCode(err))
	})
}
