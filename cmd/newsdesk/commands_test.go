package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/fwojciec/newsdesk"
	main "github.com/fwojciec/newsdesk/cmd/newsdesk"
	"github.com/fwojciec/newsdesk/mock"
	"github.com/fwojciec/newsdesk/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDeps(p *pipeline.Pipeline, stdin string) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:      context.Background(),
		Stdin:    strings.NewReader(stdin),
		Stdout:   stdout,
		Stderr:   stderr,
		Pipeline: p,
	}, stdout, stderr
}

// site returns a pipeline serving article bodies keyed by URL; unknown
// URLs fail with EFORBIDDEN.
func site(bodies map[string]string) *pipeline.Pipeline {
	return &pipeline.Pipeline{
		Fetcher: &mock.Fetcher{FetchFn: func(_ context.Context, url string) (string, error) {
			body, ok := bodies[url]
			if !ok {
				return "", newsdesk.Errorf(newsdesk.EFORBIDDEN, "%s refused access", url).WithHint("Paste the text manually.")
			}
			return body, nil
		}},
		Extractor: &mock.Extractor{ExtractFn: func(html, pageURL string) (*newsdesk.SourceDocument, error) {
			return &newsdesk.SourceDocument{Title: "標題 " + html, Body: html}, nil
		}},
		Generator: &mock.Generator{GenerateFn: func(_ context.Context, prompt string) (string, error) {
			return "", nil
		}},
	}
}

func TestRewriteURLCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints every article in argument order", func(t *testing.T) {
		t.Parallel()

		p := site(map[string]string{
			"https://udn.com/a": "第一篇文章的內容。",
			"https://udn.com/b": "第二篇文章的內容。",
		})
		var mu sync.Mutex
		calls := 0
		p.Generator = &mock.Generator{GenerateFn: func(context.Context, string) (string, error) {
			mu.Lock()
			calls++
			mu.Unlock()
			return `{"content":""}`, nil
		}}
		deps, stdout, _ := newDeps(p, "")

		err := (&main.RewriteURLCmd{URLs: []string{"https://udn.com/a", "https://udn.com/b"}, Concurrency: 2}).Run(deps)

		require.NoError(t, err)
		out := stdout.String()
		assert.Equal(t, 2, calls)
		assert.Less(t, strings.Index(out, "第一篇"), strings.Index(out, "第二篇"))
		assert.Contains(t, out, "=== https://udn.com/a")
		assert.Contains(t, out, "來源: 聯合新聞網")
	})

	t.Run("keeps going after a failure and returns it", func(t *testing.T) {
		t.Parallel()

		p := site(map[string]string{"https://udn.com/ok": "可以讀取的內容。"})
		deps, stdout, stderr := newDeps(p, "")

		err := (&main.RewriteURLCmd{URLs: []string{"https://blocked.example/x", "https://udn.com/ok"}, Concurrency: 1}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, newsdesk.EFORBIDDEN, newsdesk.ErrorCode(err))
		assert.Contains(t, stdout.String(), "可以讀取的內容")
		assert.Contains(t, stderr.String(), "https://blocked.example/x: error:")
		assert.Contains(t, stderr.String(), "Hint: Paste the text manually.")
	})
}

func TestDraftCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("reads the draft from a file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "draft.txt")
		require.NoError(t, os.WriteFile(path, []byte("新品發表會今天登場。\n"), 0o600))
		var prompt string
		p := &pipeline.Pipeline{Generator: &mock.Generator{GenerateFn: func(_ context.Context, pr string) (string, error) {
			prompt = pr
			return `{"content":"改寫稿"}`, nil
		}}}
		deps, stdout, _ := newDeps(p, "")

		err := (&main.DraftCmd{File: path, LengthFlags: main.LengthFlags{MinLength: 200}}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, prompt, "新品發表會今天登場。")
		assert.Contains(t, prompt, "長度至少 200 字。")
		assert.Contains(t, stdout.String(), "改寫稿")
		assert.Contains(t, stdout.String(), "來源: 通稿")
	})

	t.Run("warns when model output is not JSON", func(t *testing.T) {
		t.Parallel()

		deps, stdout, stderr := newDeps(generating("純文字"), "通稿內容。")

		err := (&main.DraftCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "純文字")
		assert.Contains(t, stderr.String(), "warning:")
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps(generating("x"), "   ")

		err := (&main.DraftCmd{}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, newsdesk.EINVALID, newsdesk.ErrorCode(err))
		assert.Contains(t, stderr.String(), "請提供通稿內容。")
	})
}

func TestInterviewCmd_Run(t *testing.T) {
	t.Parallel()

	var prompt string
	p := &pipeline.Pipeline{Generator: &mock.Generator{GenerateFn: func(_ context.Context, pr string) (string, error) {
		prompt = pr
		return `{"generatedText":"專訪稿。"}`, nil
	}}}
	deps, stdout, _ := newDeps(p, "歌手談新專輯。")

	err := (&main.InterviewCmd{Title: "新專輯", Tone: "formal"}).Run(deps)

	require.NoError(t, err)
	assert.Contains(t, prompt, "語氣請保持正式嚴謹。")
	assert.Contains(t, stdout.String(), "正統: 新專輯")
	assert.Contains(t, stdout.String(), "專訪稿。")
}

func TestSocialCmd_Run(t *testing.T) {
	t.Parallel()

	deps, stdout, _ := newDeps(generating(`{"content":"小明發文。","long_titles":["小明發文謝粉絲"]}`), "謝謝大家")

	err := (&main.SocialCmd{Artist: "小明", Platform: "Threads"}).Run(deps)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "正統: 小明發文謝粉絲")
}

func TestYouTubeCmd_Run(t *testing.T) {
	t.Parallel()

	var lang string
	p := generating(`{"newsContent":"影片新聞。"}`)
	p.Captions = &mock.CaptionSource{TranscriptFn: func(_ context.Context, _, l string) (string, error) {
		lang = l
		return "字幕", nil
	}}
	deps, stdout, _ := newDeps(p, "")

	err := (&main.YouTubeCmd{URL: "https://youtu.be/abc", Lang: "en"}).Run(deps)

	require.NoError(t, err)
	assert.Equal(t, "en", lang)
	assert.Contains(t, stdout.String(), "影片新聞。")
}

func TestProofreadCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints annotated text", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(generating("他得了世屆(世界)冠軍"), "他得了世屆冠軍")

		require.NoError(t, (&main.ProofreadCmd{}).Run(deps))
		assert.Equal(t, "他得了世屆(世界)冠軍\n", stdout.String())
	})

	t.Run("prints markup", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(generating("他得了世屆(世界)冠軍"), "他得了世屆冠軍")

		require.NoError(t, (&main.ProofreadCmd{Markup: true}).Run(deps))
		assert.Contains(t, stdout.String(), `<span class="error-highlight">世屆</span>（世界）`)
	})
}

func TestExtractCmd_Run(t *testing.T) {
	t.Parallel()

	deps, stdout, _ := newDeps(site(map[string]string{"https://www.setn.com/n/1": "三立的新聞內文。"}), "")

	err := (&main.ExtractCmd{URL: "https://www.setn.com/n/1"}).Run(deps)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Site:  三立新聞網")
	assert.Contains(t, stdout.String(), "Chars: 8")
	assert.Contains(t, stdout.String(), "三立的新聞內文。")
}

func TestExtractCmd_Run_JSON(t *testing.T) {
	t.Parallel()

	deps, stdout, _ := newDeps(site(map[string]string{"https://www.setn.com/n/1": "內文"}), "")
	deps.JSON = true

	require.NoError(t, (&main.ExtractCmd{URL: "https://www.setn.com/n/1"}).Run(deps))
	assert.Contains(t, stdout.String(), `"siteName": "三立新聞網"`)
}
