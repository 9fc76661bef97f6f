package adminapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/pfcp-core/internal/pfcpctx"
)

func newTestServer(t *testing.T) (*Server, *pfcpctx.Context) {
	t.Helper()
	ctx := pfcpctx.New(nil)
	s := NewServer(ctx, ":0", nil)
	return s, ctx
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSessionsListsActiveSessions(t *testing.T) {
	s, ctx := newTestServer(t)
	sess := ctx.CreateSession(42)
	_, err := sess.PDRAdd()
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/sessions", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.EqualValues(t, 1, body["count"])
}

func TestSessionPDRsNotFound(t *testing.T) {
	s, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/sessions/999/pdrs", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSessionPDRsReturnsPDRs(t *testing.T) {
	s, ctx := newTestServer(t)
	sess := ctx.CreateSession(7)
	p, err := sess.PDRAdd()
	require.NoError(t, err)
	p.Precedence = 100

	req := httptest.NewRequest(http.MethodGet, "/sessions/7/pdrs", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	pdrs := body["pdrs"].([]any)
	require.Len(t, pdrs, 1)
}

func TestPoolsReportsSubnetUsage(t *testing.T) {
	s, ctx := newTestServer(t)
	ctx.SubnetAdd(&pfcpctx.Subnet{
		Family:  pfcpctx.AFIPv4,
		Network: netip.MustParseAddr("10.45.0.0"),
		Mask:    []byte{255, 255, 0, 0},
		APN:     "internet",
	})

	req := httptest.NewRequest(http.MethodGet, "/pools", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	pools := body["pools"].([]any)
	require.Len(t, pools, 1)
}

func TestPeersListsRegisteredNodes(t *testing.T) {
	s, ctx := newTestServer(t)
	ctx.NodeAdd(netip.MustParseAddr("127.0.0.2"))

	req := httptest.NewRequest(http.MethodGet, "/peers", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	peers := body["peers"].([]any)
	require.Len(t, peers, 1)
}
