package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/newsdesk"
	ndhttp "github.com/fwojciec/newsdesk/http"
	"github.com/fwojciec/newsdesk/mock"
	"github.com/fwojciec/newsdesk/pipeline"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer serves a pipeline whose generator answers with reply and
// records the last prompt.
func newTestServer(t *testing.T, reply string, prompt *string) *httptest.Server {
	t.Helper()
	p := &pipeline.Pipeline{
		Fetcher: &mock.Fetcher{FetchFn: func(context.Context, string) (string, error) {
			return "<html></html>", nil
		}},
		Extractor: &mock.Extractor{ExtractFn: func(html, pageURL string) (*newsdesk.SourceDocument, error) {
			return &newsdesk.SourceDocument{Title: "標題", Body: "台北市今天舉行活動，現場人潮眾多。", SiteName: "中央社"}, nil
		}},
		Generator: &mock.Generator{GenerateFn: func(_ context.Context, p string) (string, error) {
			if prompt != nil {
				*prompt = p
			}
			return reply, nil
		}},
		Captions: &mock.CaptionSource{TranscriptFn: func(context.Context, string, string) (string, error) {
			return "字幕內容", nil
		}},
	}
	srv := httptest.NewServer(ndhttp.NewServer(p, nil).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func TestServer_Routes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path  string
		body  string
		field string
	}{
		{"/rewrite-url", `{"url":"https://www.cna.com.tw/news/1"}`, "rewrittenText"},
		{"/rewrite-news-draft", `{"content":"通稿內容。","isBrandsFiltered":true}`, "rewrittenNewsDraftText"},
		{"/translate-rewrite", `{"url":"https://www.bbc.com/news/1","sourceLanguage":"auto"}`, "translatedRewrittenText"},
		{"/generate-news", `{"content":"訪問內容","title":"標題","tone":"formal"}`, "generatedText"},
		{"/celebrity-social-to-news", `{"artistName":"小明","platform":"IG","postContent":"貼文"}`, "celebrityNewsText"},
		{"/generate-news-from-youtube", `{"youtubeUrl":"https://youtu.be/abc","sourceLanguage":"en"}`, "newsContent"},
		{"/proofread-text", `{"text":"他得了世屆冠軍"}`, "correctedText"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			srv := newTestServer(t, `{"content":"生成的新聞稿。"}`, nil)

			resp, out := post(t, srv.URL+tt.path, tt.body)

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			content, ok := out["content"].(map[string]any)
			require.True(t, ok, "response has content object: %v", out)
			assert.NotEmpty(t, content[tt.field])
			titles, ok := content["optimizedTitles"].(map[string]any)
			require.True(t, ok)
			assert.Len(t, titles, 3)
		})
	}
}

func TestServer_RewriteURL_ReportsSource(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, `{"content":"改寫稿"}`, nil)

	_, out := post(t, srv.URL+"/rewrite-url", `{"url":"https://www.cna.com.tw/news/1"}`)

	content := out["content"].(map[string]any)
	assert.Equal(t, "改寫稿", content["rewrittenText"])
	assert.Equal(t, "中央社", content["originalSource"])
	assert.NotContains(t, content, "parseFailed")
}

func TestServer_PassesOptionsToPrompt(t *testing.T) {
	t.Parallel()

	var prompt string
	srv := newTestServer(t, `{"content":"x"}`, &prompt)

	resp, _ := post(t, srv.URL+"/generate-news",
		`{"content":"訪問","minLength":300,"maxLength":500,"numParagraphs":3,"tone":"announcement"}`)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, prompt, "長度控制在約 300 到 500 字之間。")
	assert.Contains(t, prompt, "分成約 3 段。")
	assert.Contains(t, prompt, "公告式")
}

func TestServer_ValidationErrorsAreBadRequests(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, "", nil)

	resp, out := post(t, srv.URL+"/rewrite-url", `{}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "請提供新聞網址。", out["error"])
}

func TestServer_MalformedJSON(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, "", nil)

	resp, out := post(t, srv.URL+"/proofread-text", `{"text":`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, out["error"], "JSON")
}

func TestServer_UpstreamFailuresAreServerErrors(t *testing.T) {
	t.Parallel()

	p := &pipeline.Pipeline{
		Generator: &mock.Generator{GenerateFn: func(context.Context, string) (string, error) {
			return "", errors.New("quota exceeded")
		}},
	}
	var logs bytes.Buffer
	srv := httptest.NewServer(ndhttp.NewServer(p, slog.New(slog.NewTextHandler(&logs, nil))).Handler())
	defer srv.Close()

	resp, out := post(t, srv.URL+"/proofread-text", `{"text":"內容"}`)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, out["error"], "quota exceeded")
	assert.Contains(t, logs.String(), "request failed")
	assert.Contains(t, logs.String(), "status=500")
}

func TestServer_ForbiddenIncludesHint(t *testing.T) {
	t.Parallel()

	p := &pipeline.Pipeline{
		Fetcher: &mock.Fetcher{FetchFn: func(context.Context, string) (string, error) {
			return "", newsdesk.Errorf(newsdesk.EFORBIDDEN, "refused").WithHint("Paste the text manually.")
		}},
		Extractor: &mock.Extractor{},
		Generator: &mock.Generator{},
	}
	srv := httptest.NewServer(ndhttp.NewServer(p, nil).Handler())
	defer srv.Close()

	resp, out := post(t, srv.URL+"/rewrite-url", `{"url":"https://example.com"}`)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "refused Paste the text manually.", out["error"])
}

func TestServer_Middleware(t *testing.T) {
	t.Parallel()

	t.Run("sets request ID and CORS headers", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, "", nil)

		resp, err := http.Get(srv.URL + "/healthz")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
		_, err = uuid.Parse(resp.Header.Get(ndhttp.RequestIDHeader))
		assert.NoError(t, err)
	})

	t.Run("answers preflight requests", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, "", nil)
		req, err := http.NewRequest(http.MethodOptions, srv.URL+"/rewrite-url", nil)
		require.NoError(t, err)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), "POST")
	})

	t.Run("gives each request a distinct ID", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, "", nil)
		ids := map[string]bool{}
		for range 3 {
			resp, err := http.Get(srv.URL + "/healthz")
			require.NoError(t, err)
			resp.Body.Close()
			ids[resp.Header.Get(ndhttp.RequestIDHeader)] = true
		}

		assert.Len(t, ids, 3)
	})
}

func TestServer_OpenAndClose(t *testing.T) {
	t.Parallel()

	s := ndhttp.NewServer(&pipeline.Pipeline{}, nil)
	s.Addr = "127.0.0.1:0"
	require.NoError(t, s.Open())

	resp, err := http.Get(s.URL() + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, s.Close(ctx))
}
