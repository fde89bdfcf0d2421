package ingestion

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	v1 "github.com/aevon-lab/overseer/internal/api/v1"
	httperr "github.com/aevon-lab/overseer/internal/core/errors"
	"github.com/aevon-lab/overseer/internal/core/notify"
	"github.com/aevon-lab/overseer/internal/core/policy"
	ingestionmocks "github.com/aevon-lab/overseer/internal/mocks/ingestion"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T, sup Supervisor) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewService(sup, 1).RegisterRoutes(r)
	return r
}

func do(r http.Handler, method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func decodeError(t *testing.T, resp *httptest.ResponseRecorder) httperr.ErrorResponse {
	t.Helper()
	var errResp httperr.ErrorResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &errResp))
	return errResp
}

func TestSubmitHandler_Success(t *testing.T) {
	sup := ingestionmocks.NewSupervisor(t)
	sup.EXPECT().
		SubmitEvent("UI", "logNote", mock.MatchedBy(func(p interface{}) bool {
			m, ok := p.(map[string]interface{})
			return ok && m["text"] == "hi"
		})).
		Return("evt-001").
		Once()

	r := newRouter(t, sup)
	resp := do(r, http.MethodPost, "/v1/events", []byte(`{"source":"UI","action":"logNote","payload":{"text":"hi"}}`))

	require.Equal(t, http.StatusAccepted, resp.Code)
	var result v1.SubmitResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &result))
	require.Equal(t, "evt-001", result.ID)
}

func TestSubmitHandler_InvalidJSON(t *testing.T) {
	sup := ingestionmocks.NewSupervisor(t)
	r := newRouter(t, sup)

	resp := do(r, http.MethodPost, "/v1/events", []byte("not json"))

	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Equal(t, httperr.HttpInvalidJsonError, decodeError(t, resp).ErrorType)
}

func TestSubmitHandler_ValidationFailure(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing source", body: `{"action":"logNote"}`},
		{name: "blank action", body: `{"source":"UI","action":"  "}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sup := ingestionmocks.NewSupervisor(t)
			r := newRouter(t, sup)

			resp := do(r, http.MethodPost, "/v1/events", []byte(tc.body))

			require.Equal(t, http.StatusBadRequest, resp.Code)
			require.Equal(t, httperr.HttpValidationError, decodeError(t, resp).ErrorType)
		})
	}
}

func TestSubmitHandler_BodyTooLarge(t *testing.T) {
	sup := ingestionmocks.NewSupervisor(t)
	r := newRouter(t, sup)

	big := `{"source":"UI","action":"logNote","payload":"` + strings.Repeat("x", 1024*1024) + `"}`
	resp := do(r, http.MethodPost, "/v1/events", []byte(big))

	require.Equal(t, http.StatusRequestEntityTooLarge, resp.Code)
	require.Equal(t, httperr.HttpPayloadTooLargeError, decodeError(t, resp).ErrorType)
}

func TestApproveHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		approvedBy string
		found      bool
		wantCode   int
	}{
		{name: "named approver", body: `{"approved_by":"alice"}`, approvedBy: "alice", found: true, wantCode: http.StatusOK},
		{name: "empty body", body: "", approvedBy: "", found: true, wantCode: http.StatusOK},
		{name: "unknown event", body: `{"approved_by":"alice"}`, approvedBy: "alice", found: false, wantCode: http.StatusNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sup := ingestionmocks.NewSupervisor(t)
			sup.EXPECT().Approve("evt-001", tc.approvedBy).Return(tc.found).Once()
			r := newRouter(t, sup)

			resp := do(r, http.MethodPost, "/v1/events/evt-001/approve", []byte(tc.body))

			require.Equal(t, tc.wantCode, resp.Code)
			if !tc.found {
				require.Equal(t, httperr.HttpEventNotFoundError, decodeError(t, resp).ErrorType)
			}
		})
	}
}

func TestRollbackHandler(t *testing.T) {
	sup := ingestionmocks.NewSupervisor(t)
	sup.EXPECT().Rollback("evt-001", "wrong file").Return(true).Once()
	sup.EXPECT().Rollback("missing", "").Return(false).Once()
	r := newRouter(t, sup)

	resp := do(r, http.MethodPost, "/v1/events/evt-001/rollback", []byte(`{"reason":"wrong file"}`))
	require.Equal(t, http.StatusOK, resp.Code)

	resp = do(r, http.MethodPost, "/v1/events/missing/rollback", nil)
	require.Equal(t, http.StatusNotFound, resp.Code)
	notFound := decodeError(t, resp)
	require.Equal(t, httperr.HttpEventNotFoundError, notFound.ErrorType)
	require.Equal(t, map[string]interface{}{"event_id": "missing"}, notFound.Details)

	resp = do(r, http.MethodPost, "/v1/events/evt-001/rollback", []byte(`{"reason":`))
	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestSnapshotHandler(t *testing.T) {
	snap := v1.Snapshot{
		Events:    []v1.Event{{ID: "evt-001", Source: "UI", Action: "logNote"}},
		Approvals: []v1.Approval{},
		Rollbacks: []v1.Rollback{},
		Insights:  []v1.Insight{},
		Policy:    policy.Defaults(),
	}
	sup := ingestionmocks.NewSupervisor(t)
	sup.EXPECT().Snapshot().Return(snap).Once()
	r := newRouter(t, sup)

	resp := do(r, http.MethodGet, "/v1/snapshot", nil)

	require.Equal(t, http.StatusOK, resp.Code)
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	require.Len(t, got["events"], 1)
	require.Equal(t, []interface{}{}, got["approvals"])
	require.Contains(t, got, "policy")
}

func TestPatchPolicyHandler(t *testing.T) {
	sup := ingestionmocks.NewSupervisor(t)
	sup.EXPECT().
		UpdatePolicy(mock.MatchedBy(func(p v1.PolicyPatch) bool {
			return len(p.TemporalWindows) == 2 && p.AutoApprove == nil && p.HistoryLimit == nil
		})).
		Return([]string{"temporal_windows"}).
		Once()
	updated := policy.Defaults()
	updated.TemporalWindows = []int{10}
	sup.EXPECT().Policy().Return(updated).Once()
	r := newRouter(t, sup)

	resp := do(r, http.MethodPatch, "/v1/policy", []byte(`{"temporal_windows":[-1,10],"auto_approve":"yes","history_limit":"big"}`))

	require.Equal(t, http.StatusOK, resp.Code)
	var got v1.PolicyUpdateResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	require.Equal(t, []string{"temporal_windows"}, got.Applied)
	require.Equal(t, []int{10}, got.Policy.TemporalWindows)
}

func TestPatchPolicyHandler_RejectsNonObject(t *testing.T) {
	sup := ingestionmocks.NewSupervisor(t)
	r := newRouter(t, sup)

	for _, body := range []string{`null`, `[1,2]`, `"x"`} {
		resp := do(r, http.MethodPatch, "/v1/policy", []byte(body))
		require.Equal(t, http.StatusBadRequest, resp.Code, body)
	}
}

func TestGetPolicyHandler(t *testing.T) {
	sup := ingestionmocks.NewSupervisor(t)
	sup.EXPECT().Policy().Return(policy.Defaults()).Once()
	r := newRouter(t, sup)

	resp := do(r, http.MethodGet, "/v1/policy", nil)

	require.Equal(t, http.StatusOK, resp.Code)
	var got v1.Policy
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	require.Equal(t, policy.Defaults().TemporalWindows, got.TemporalWindows)
}

func TestStreamHandler_PushesSnapshots(t *testing.T) {
	sup := ingestionmocks.NewSupervisor(t)
	sup.EXPECT().
		Subscribe(mock.Anything).
		RunAndReturn(func(fn notify.Callback) notify.Subscription {
			fn(v1.Snapshot{Events: []v1.Event{{ID: "evt-001"}}})
			return notify.Subscription{ID: "sub-1"}
		}).
		Once()

	srv := httptest.NewServer(newRouter(t, sup))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/v1/stream", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Content-Type"), "text/event-stream")

	scanner := bufio.NewScanner(resp.Body)
	var event, data string
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "event:") {
			event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		}
		if strings.HasPrefix(line, "data:") {
			data = strings.TrimSpace(strings.TrimPrefix(line, "data:"))
			break
		}
	}

	require.Equal(t, StreamEvent, event)
	var snap v1.Snapshot
	require.NoError(t, json.Unmarshal([]byte(data), &snap))
	require.Equal(t, "evt-001", snap.Events[0].ID)
}
