package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tidinho/dash-leishmaniose/internal/config"
	"github.com/tidinho/dash-leishmaniose/internal/store"
)

const sampleCSV = `dt_notific;sigla_uf;nm_mun;no_fantasia;lat_locali;long_local;idh;renda_media;precipitacao_mensal;saneamento_basico
15/03/2019;MA;Caxias;HG;-4.86;-43.35;0.6;500;80;12,5
20/05/2020;PI;Teresina;HU;-5.09;-42.8;0.75;900;60;40
`

func newTestServer(t *testing.T, csv string) *Server {
	t.Helper()
	dir := t.TempDir()
	snapshot := filepath.Join(dir, "casos.csv")
	require.NoError(t, os.WriteFile(snapshot, []byte(csv), 0644))

	cfg := config.DefaultConfig()
	cfg.Data.DataDir = filepath.Join(dir, "data")
	cfg.Data.SnapshotPath = snapshot
	cfg.Data.Watch = false

	s, err := NewServer(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Shutdown(context.Background()) })
	return s
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestServer_SummaryAndLoadLog(t *testing.T) {
	s := newTestServer(t, sampleCSV)

	w := get(t, s, "/api/summary")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"totalCases":2`)

	var loads struct {
		Items []store.LoadLog `json:"items"`
	}
	w = get(t, s, "/api/loads")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loads))
	require.Len(t, loads.Items, 1)
	assert.Equal(t, store.LoadStatusOK, loads.Items[0].Status)
	assert.Equal(t, 2, loads.Items[0].TotalRows)
	assert.Equal(t, "csv", loads.Items[0].Format)
	assert.NotEmpty(t, loads.Items[0].FileHash)
}

func TestServer_MissingColumnsRecorded(t *testing.T) {
	s := newTestServer(t, "dt_notific;sigla_uf\n15/03/2019;MA\n")

	w := get(t, s, "/api/dashboard")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "nm_mun")

	last, err := s.GetStore().LatestLoadLog()
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, store.LoadStatusFailed, last.Status)
}

func TestServer_StaticAndCORS(t *testing.T) {
	s := newTestServer(t, sampleCSV)

	w := get(t, s, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "<html"))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	assert.Equal(t, http.StatusOK, get(t, s, "/painel/qualquer").Code)
	assert.Equal(t, http.StatusNotFound, get(t, s, "/api/nao-existe").Code)

	opt := httptest.NewRecorder()
	s.Handler().ServeHTTP(opt, httptest.NewRequest(http.MethodOptions, "/api/summary", nil))
	assert.Equal(t, http.StatusNoContent, opt.Code)
}
