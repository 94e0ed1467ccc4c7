package restyutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

type memoryOutput map[string]string

func (m memoryOutput) Write(id string, contents string) {
	m[id] = contents
}

func TestFormatHeadersRedacts(t *testing.T) {
	headers := http.Header{}
	headers.Set("Authorization", "Bearer secret")
	headers.Set("Accept", "application/json")

	require.Equal(t, "Accept: application/json\nAuthorization: <redacted>", formatHeaders(headers))
	require.Equal(t, "", formatHeaders(http.Header{}))
}

func TestDumpExchanges(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte(`{"message":"no"}`))
	}))
	defer server.Close()

	out := memoryOutput{}
	client := resty.New()
	DumpExchanges(client, out)

	_, err := client.R().
		SetAuthToken("secret").
		Get(server.URL + "/courses")
	if err != nil {
		t.Fatal(err)
	}

	require.Len(t, out, 1)
	message := out["1"]
	require.Contains(t, message, "GET "+server.URL+"/courses")
	require.Contains(t, message, "Authorization: <redacted>")
	require.NotContains(t, message, "secret")
	require.Contains(t, message, "418 ")
	require.Contains(t, message, `{"message":"no"}`)
}

func TestFormatRequestBody(t *testing.T) {
	get, err := http.NewRequest(http.MethodGet, "http://example.com/courses", nil)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, "<NO BODY AVAILABLE>", formatRequestBody(get))

	get.GetBody = func() (io.ReadCloser, error) { return nil, nil }
	require.Equal(t, "<NO BODY AVAILABLE>", formatRequestBody(get))

	post, err := http.NewRequest(http.MethodPost, "http://example.com/courses", strings.NewReader(`{"id":1}`))
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, `{"id":1}`, formatRequestBody(post))
}

func TestFilesystemOutput(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "dump")

	out, err := NewFilesystemOutput(dir)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, dir, filepath.Dir(out.Directory()))
	out.Write("1", "hello")

	contents, err := os.ReadFile(filepath.Join(out.Directory(), "1.txt"))
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, "hello", string(contents))
}

func TestFilesystemOutputKeepsExistingFiles(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "thesis.docx")
	err := os.WriteFile(existing, []byte("chapter one"), 0600)
	if err != nil {
		t.Fatal(err)
	}

	first, err := NewFilesystemOutput(dir)
	if err != nil {
		t.Fatal(err)
	}
	first.Write("1", "first run")
	second, err := NewFilesystemOutput(dir)
	if err != nil {
		t.Fatal(err)
	}
	require.NotEqual(t, first.Directory(), second.Directory())

	contents, err := os.ReadFile(existing)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, "chapter one", string(contents))

	contents, err = os.ReadFile(filepath.Join(first.Directory(), "1.txt"))
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, "first run", string(contents))
}
