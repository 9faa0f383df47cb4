package chartserver

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeResults(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "results.csv")
	csv := "t,pairs,probability,elapsed_seconds\n" +
		"0.1,2,0.75,0.001500\n" +
		"0.2,1,0.3,0.000800\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0644))
	return path
}

func TestHomeListsCharts(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(New(writeResults(t)).ServeMux())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProbabilityChartRenders(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(New(writeResults(t)).ServeMux())
	defer srv.Close()

	for _, route := range []string{"/probability", "/runtime"} {
		resp, err := http.Get(srv.URL + route)
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode, route)
		assert.Contains(t, string(body), "echarts", route)
	}
}

func TestMissingResultsFileReports500(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(New(filepath.Join(t.TempDir(), "absent.csv")).ServeMux())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/probability")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
