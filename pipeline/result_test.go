package pipeline_test

import (
	"encoding/json"
	"testing"

	"github.com/fwojciec/newsdesk"
	"github.com/fwojciec/newsdesk/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult_MarshalJSON(t *testing.T) {
	t.Parallel()

	titles := newsdesk.TitleSet{Clickbait: "a", Standard: "b", Creative: "c"}

	t.Run("reports text under the kind field", func(t *testing.T) {
		t.Parallel()

		res := pipeline.Result{
			Kind:           pipeline.KindRewrite,
			Text:           "新聞稿",
			Titles:         titles,
			OriginalSource: "ETtoday",
			Parsed:         true,
		}

		data, err := json.Marshal(res)

		require.NoError(t, err)
		assert.JSONEq(t, `{
			"rewrittenText": "新聞稿",
			"optimizedTitles": {"藏標": "a", "正統": "b", "特別": "c"},
			"originalSource": "ETtoday"
		}`, string(data))
	})

	t.Run("includes markup and parse failure when set", func(t *testing.T) {
		t.Parallel()

		res := pipeline.Result{
			Kind:   pipeline.KindProofread,
			Text:   "x",
			Titles: titles,
			Markup: "<span>x</span>",
		}

		data, err := json.Marshal(res)

		require.NoError(t, err)
		var body map[string]any
		require.NoError(t, json.Unmarshal(data, &body))
		assert.Equal(t, "x", body["correctedText"])
		assert.Equal(t, "<span>x</span>", body["markup"])
		assert.Equal(t, true, body["parseFailed"])
		assert.NotContains(t, body, "originalSource")
	})

	t.Run("marshals through a pointer", func(t *testing.T) {
		t.Parallel()

		data, err := json.Marshal(&pipeline.Result{Kind: pipeline.KindVideo, Text: "v", Parsed: true})

		require.NoError(t, err)
		assert.Contains(t, string(data), `"newsContent":"v"`)
	})
}

func TestParseTone(t *testing.T) {
	t.Parallel()

	assert.Equal(t, pipeline.ToneFormal, pipeline.ParseTone("formal"))
	assert.Equal(t, pipeline.ToneEngaging, pipeline.ParseTone("engaging"))
	assert.Equal(t, pipeline.ToneAnnouncement, pipeline.ParseTone("announcement"))
	assert.Equal(t, pipeline.ToneNeutral, pipeline.ParseTone("neutral"))
	assert.Equal(t, pipeline.ToneNeutral, pipeline.ParseTone(""))
	assert.Equal(t, pipeline.ToneNeutral, pipeline.ParseTone("FORMAL"))
}
