package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vendhttp "github.com/aretw0/vendsim/internal/adapters/http"
	"github.com/aretw0/vendsim/pkg/adapters/memory"
	"github.com/aretw0/vendsim/pkg/domain"
	"github.com/aretw0/vendsim/pkg/session"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	manager := session.NewManager(memory.NewStore())
	ts := httptest.NewServer(vendhttp.NewHandler(manager))
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func createSession(t *testing.T, ts *httptest.Server, kind string) vendhttp.SessionState {
	t.Helper()
	resp := postJSON(t, ts.URL+"/sessions", map[string]string{"kind": kind})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[vendhttp.SessionState](t, resp)
}

func insertSymbol(t *testing.T, ts *httptest.Server, id, symbol string) (domain.Record, vendhttp.SessionState) {
	t.Helper()
	resp := postJSON(t, fmt.Sprintf("%s/sessions/%s/symbols", ts.URL, id), map[string]string{"symbol": symbol})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[struct {
		Record domain.Record         `json:"record"`
		State  vendhttp.SessionState `json:"state"`
	}](t, resp)
	return body.Record, body.State
}

func TestListMachines(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/machines")
	require.NoError(t, err)
	summaries := decode[[]vendhttp.MachineSummary](t, resp)

	require.Len(t, summaries, 3)
	assert.Equal(t, domain.KindSingle, summaries[0].Kind)
	assert.Equal(t, 11, summaries[0].States)
}

func TestGetMachine(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/machines/dual")
	require.NoError(t, err)
	def := decode[domain.Definition](t, resp)
	assert.Equal(t, "Dual-Path DFA", def.Name)
	assert.Len(t, def.States, 20)

	resp, err = http.Get(ts.URL + "/machines/pushdown")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMachineGraph(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/machines/nfa/graph")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	buf := new(bytes.Buffer)
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "stateDiagram-v2")
	assert.Contains(t, buf.String(), "EYE_READY")
}

func TestSessionLifecycle(t *testing.T) {
	ts := newTestServer(t)

	state := createSession(t, ts, "single")
	assert.NotEmpty(t, state.ID)
	assert.Equal(t, []domain.State{"Q0"}, state.Current)
	assert.Equal(t, 0, state.Balance)

	rec, state := insertSymbol(t, ts, state.ID, "RM20")
	assert.Equal(t, []domain.State{"Q4"}, rec.After)
	assert.Equal(t, 20, state.Balance)

	_, state = insertSymbol(t, ts, state.ID, "RM10")
	_, state = insertSymbol(t, ts, state.ID, "RM5")
	assert.True(t, state.CanBuyEyeDrop)

	rec, state = insertSymbol(t, ts, state.ID, "e")
	assert.Equal(t, domain.ProductEyeDrop, rec.Dispensed)
	assert.Equal(t, 0, state.Balance)
	assert.Len(t, state.History, 4)

	// Listed, fetchable, deletable.
	resp, err := http.Get(ts.URL + "/sessions")
	require.NoError(t, err)
	ids := decode[[]string](t, resp)
	assert.Equal(t, []string{state.ID}, ids)

	resp, err = http.Get(ts.URL + "/sessions/" + state.ID)
	require.NoError(t, err)
	fetched := decode[vendhttp.SessionState](t, resp)
	assert.Equal(t, state.ID, fetched.ID)
	assert.Len(t, fetched.History, 4)

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/sessions/"+state.ID, nil)
	require.NoError(t, err)
	delResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	delResp.Body.Close()
	assert.Equal(t, http.StatusNoContent, delResp.StatusCode)

	resp, err = http.Get(ts.URL + "/sessions/" + state.ID)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSessionReset(t *testing.T) {
	ts := newTestServer(t)

	state := createSession(t, ts, "nfa")
	_, state = insertSymbol(t, ts, state.ID, "RM20")
	_, state = insertSymbol(t, ts, state.ID, "RM20")
	assert.Equal(t, 40, state.Balance)

	resp := postJSON(t, fmt.Sprintf("%s/sessions/%s/reset", ts.URL, state.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	state = decode[vendhttp.SessionState](t, resp)
	assert.Equal(t, []domain.State{"Q0"}, state.Current)
	assert.Empty(t, state.History)
}

func TestSessionGraphOverlay(t *testing.T) {
	ts := newTestServer(t)

	state := createSession(t, ts, "single")
	_, _ = insertSymbol(t, ts, state.ID, "RM20")

	resp, err := http.Get(ts.URL + "/sessions/" + state.ID + "/graph")
	require.NoError(t, err)
	defer resp.Body.Close()

	buf := new(bytes.Buffer)
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "class Q4 current")
	assert.Contains(t, buf.String(), "class Q0 visited")
}

func TestBadRequests(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/sessions", map[string]string{"kind": "turing"})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	state := createSession(t, ts, "dual")
	resp = postJSON(t, fmt.Sprintf("%s/sessions/%s/symbols", ts.URL, state.ID), map[string]string{})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = postJSON(t, ts.URL+"/sessions/unknown/symbols", map[string]string{"symbol": "RM5"})
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestIndexAndHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))

	health, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	status := decode[map[string]string](t, health)
	assert.Equal(t, "ok", status["status"])
}
