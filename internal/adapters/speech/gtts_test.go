package speech

import (
	"net/http"
	"net/http/httptest"
	"os"
	"ryzexbot/internal/adapters/file"
	"ryzexbot/internal/core/domain"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// id3 is an ID3v2 tag header, enough for content sniffing to report audio/mpeg.
var id3 = []byte{'I', 'D', '3', 0x04, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}

func TestSplitText(t *testing.T) {
	long := strings.Repeat("a", 250)

	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "short", text: "hello world", want: []string{"hello world"}},
		{name: "empty", text: "   ", want: nil},
		{name: "word longer than limit", text: long, want: []string{long[:100], long[100:200], long[200:]}},
		{
			name: "breaks on spaces",
			text: strings.Repeat("word ", 30),
			want: []string{
				strings.TrimSpace(strings.Repeat("word ", 20)),
				strings.TrimSpace(strings.Repeat("word ", 10)),
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := splitText(tc.text, 100)

			assert.Equal(t, tc.want, got)
			for _, c := range got {
				assert.LessOrEqual(t, utf8.RuneCountInString(c), 100)
			}
		})
	}
}

func TestGTTS_SynthesizeToFile(t *testing.T) {
	var mu sync.Mutex
	var indexes []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "en", q.Get("tl"))
		assert.Equal(t, "tw-ob", q.Get("client"))
		assert.LessOrEqual(t, utf8.RuneCountInString(q.Get("q")), 100)

		mu.Lock()
		indexes = append(indexes, q.Get("idx")+"/"+q.Get("total"))
		mu.Unlock()

		_, _ = w.Write(id3)
	}))
	defer srv.Close()

	store, err := file.NewStore(t.TempDir())
	require.NoError(t, err)

	g := NewGTTS(srv.URL, "en", store, time.Second)

	path, err := g.SynthesizeToFile(t.Context(), strings.Repeat("speak ", 30))
	require.NoError(t, err)
	defer store.Remove(path)

	assert.True(t, strings.HasSuffix(path, ".mp3"))
	assert.Equal(t, []string{"0/2", "1/2"}, indexes)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, data, 2*len(id3))
}

func TestGTTS_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    []byte
		text    string
		wantErr error
	}{
		{name: "server error", status: http.StatusTooManyRequests, body: id3, text: "hi",
			wantErr: domain.ErrProviderFailed},
		{name: "not audio", status: http.StatusOK, body: []byte("<html>captcha</html>"), text: "hi",
			wantErr: domain.ErrProviderFailed},
		{name: "empty text", status: http.StatusOK, body: id3, text: " ", wantErr: domain.ErrEmptyPrompt},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Length", strconv.Itoa(len(tc.body)))
				w.WriteHeader(tc.status)
				_, _ = w.Write(tc.body)
			}))
			defer srv.Close()

			dir := t.TempDir()
			store, err := file.NewStore(dir)
			require.NoError(t, err)

			_, err = NewGTTS(srv.URL, "en", store, time.Second).SynthesizeToFile(t.Context(), tc.text)

			require.ErrorIs(t, err, tc.wantErr)

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}
