package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/example/game-save-demo/domain/gamesave"
	"github.com/example/game-save-demo/modules/activity"
	"github.com/example/game-save-demo/modules/gamesave"
	"github.com/example/game-save-demo/modules/player"
)

// mockPlayers implements player.PlayerPort for testing.
type mockPlayers struct{}

func (mockPlayers) SignIn(_ context.Context, code string) (*player.SignInResponse, error) {
	if code == "" {
		return nil, errors.New("player code required")
	}
	return &player.SignInResponse{PlayerID: "id-" + code, Token: "tok-" + code, TokenType: "Bearer", ExpiresIn: 3600}, nil
}

func (mockPlayers) ValidateToken(_ context.Context, token string) (*player.ValidateTokenResponse, error) {
	if !strings.HasPrefix(token, "tok-") {
		return &player.ValidateTokenResponse{Valid: false, Error: "invalid token"}, nil
	}
	return &player.ValidateTokenResponse{Valid: true, PlayerID: "id-" + strings.TrimPrefix(token, "tok-")}, nil
}

// mockSaves implements gamesave.GameSavePort with canned replies.
type mockSaves struct {
	initResp    *gamesave.InitProviderResponse
	outcomeResp *gamesave.OutcomeResponse
	fetchResp   *gamesave.FetchBlobsResponse
	loadResp    *gamesave.LoadProfileResponse
	err         error

	initCalls  int
	lastSubmit *gamesave.SubmitBlobsRequest
	lastFetch  *gamesave.FetchBlobsRequest
	lastSave   *gamesave.SaveProfileRequest
}

func (m *mockSaves) InitProvider(_ context.Context, _ *gamesave.InitProviderRequest) (*gamesave.InitProviderResponse, error) {
	m.initCalls++
	return m.initResp, m.err
}

func (m *mockSaves) SubmitBlobs(_ context.Context, req *gamesave.SubmitBlobsRequest) (*gamesave.OutcomeResponse, error) {
	m.lastSubmit = req
	return m.outcomeResp, m.err
}

func (m *mockSaves) FetchBlobs(_ context.Context, req *gamesave.FetchBlobsRequest) (*gamesave.FetchBlobsResponse, error) {
	m.lastFetch = req
	return m.fetchResp, m.err
}

func (m *mockSaves) DeleteContainer(_ context.Context, _ *gamesave.DeleteContainerRequest) (*gamesave.OutcomeResponse, error) {
	return m.outcomeResp, m.err
}

func (m *mockSaves) SaveProfile(_ context.Context, req *gamesave.SaveProfileRequest) (*gamesave.OutcomeResponse, error) {
	m.lastSave = req
	return m.outcomeResp, m.err
}

func (m *mockSaves) LoadProfile(_ context.Context, _ *gamesave.LoadProfileRequest) (*gamesave.LoadProfileResponse, error) {
	return m.loadResp, m.err
}

// mockActivity implements activity.ActivityPort for testing.
type mockActivity struct {
	lastPlayer string
}

func (m *mockActivity) ListActivity(_ context.Context, playerID string, _ int) (*activity.ListActivityResponse, error) {
	m.lastPlayer = playerID
	return &activity.ListActivityResponse{
		Entries: []activity.Entry{{OperationID: "op-1", PlayerID: playerID, Kind: "container_saved"}},
		Total:   1,
	}, nil
}

func newTestModule(saves *mockSaves, act *mockActivity) *APIModule {
	m := NewModule(0)
	m.players = mockPlayers{}
	m.saves = saves
	m.activity = act
	m.app = m.newApp()
	return m
}

func doRequest(t *testing.T, m *APIModule, method, path, token, body string) (int, string) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := m.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(data)
}

func TestAPI_SignIn(t *testing.T) {
	m := newTestModule(&mockSaves{}, &mockActivity{})

	status, body := doRequest(t, m, http.MethodPost, "/api/v1/players/sign-in", "", `{"player_code":"ada"}`)
	assert.Equal(t, http.StatusOK, status)

	var resp SignInResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	assert.Equal(t, "id-ada", resp.PlayerID)
	assert.Equal(t, "tok-ada", resp.Token)

	status, _ = doRequest(t, m, http.MethodPost, "/api/v1/players/sign-in", "", `{"player_code":""}`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAPI_RequiresBearerToken(t *testing.T) {
	m := newTestModule(&mockSaves{}, &mockActivity{})

	status, body := doRequest(t, m, http.MethodGet, "/api/v1/containers/slot/blobs?keys=a", "", "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Contains(t, body, "Authorization header is required")

	status, _ = doRequest(t, m, http.MethodGet, "/api/v1/profile", "", "")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAPI_InitProvider(t *testing.T) {
	saves := &mockSaves{initResp: &gamesave.InitProviderResponse{PlayerID: "id-ada", Outcome: domain.OutcomeOK}}
	m := newTestModule(saves, &mockActivity{})

	status, body := doRequest(t, m, http.MethodPost, "/api/v1/players/id-ada/provider", "tok-ada", "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"player_id":"id-ada","outcome":"ok"}`, body)
	assert.Equal(t, 1, saves.initCalls)

	status, body = doRequest(t, m, http.MethodPost, "/api/v1/players/id-ada/provider", "bogus", "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Contains(t, body, `"outcome":"user_has_no_account_info"`)
	assert.Equal(t, 1, saves.initCalls)

	saves.initResp = &gamesave.InitProviderResponse{PlayerID: "id-ada", Outcome: domain.OutcomeNoAccess}
	status, body = doRequest(t, m, http.MethodPost, "/api/v1/players/id-ada/provider", "tok-ada", "")
	assert.Equal(t, http.StatusForbidden, status)
	assert.JSONEq(t, `{"player_id":"id-ada","outcome":"no_access"}`, body)
}

func TestAPI_InitProviderOtherPlayer(t *testing.T) {
	saves := &mockSaves{initResp: &gamesave.InitProviderResponse{PlayerID: "id-ada", Outcome: domain.OutcomeOK}}
	m := newTestModule(saves, &mockActivity{})

	status, body := doRequest(t, m, http.MethodPost, "/api/v1/players/id-grace/provider", "tok-ada", "")
	assert.Equal(t, http.StatusForbidden, status)
	assert.Contains(t, body, `"error":"player_mismatch"`)
	assert.Zero(t, saves.initCalls)
}

func TestAPI_PutBlobs(t *testing.T) {
	saves := &mockSaves{outcomeResp: &gamesave.OutcomeResponse{Outcome: domain.OutcomeOK}}
	m := newTestModule(saves, &mockActivity{})

	// "KgAAAA==" is base64 for 2A 00 00 00.
	status, body := doRequest(t, m, http.MethodPut, "/api/v1/containers/slot/blobs", "tok-ada",
		`{"display_name":"Slot One","blobs":{"Score":"KgAAAA=="}}`)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"outcome":"ok"}`, body)

	require.NotNil(t, saves.lastSubmit)
	assert.Equal(t, "tok-ada", saves.lastSubmit.Token)
	assert.Equal(t, "slot", saves.lastSubmit.Container)
	assert.Equal(t, "Slot One", saves.lastSubmit.DisplayName)
	assert.Equal(t, map[string][]byte{"Score": {0x2A, 0, 0, 0}}, saves.lastSubmit.Blobs)

	saves.outcomeResp = &gamesave.OutcomeResponse{Outcome: domain.OutcomeUpdateTooBig}
	status, body = doRequest(t, m, http.MethodPut, "/api/v1/containers/slot/blobs", "tok-ada", `{"blobs":{"a":"AQ=="}}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, status)
	assert.JSONEq(t, `{"outcome":"update_too_big"}`, body)

	saves.outcomeResp = &gamesave.OutcomeResponse{Outcome: domain.OutcomeNoAccess, Error: gamesave.ErrCodeProviderNotInitialized}
	status, _ = doRequest(t, m, http.MethodPut, "/api/v1/containers/slot/blobs", "tok-ada", `{"blobs":{"a":"AQ=="}}`)
	assert.Equal(t, http.StatusPreconditionFailed, status)
}

func TestAPI_GetBlobs(t *testing.T) {
	saves := &mockSaves{fetchResp: &gamesave.FetchBlobsResponse{
		Blobs:   map[string][]byte{"a": {1}},
		Outcome: domain.OutcomeOK,
	}}
	m := newTestModule(saves, &mockActivity{})

	status, body := doRequest(t, m, http.MethodGet, "/api/v1/containers/slot/blobs?keys=a,,b", "tok-ada", "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"container":"slot","blobs":{"a":"AQ=="},"outcome":"ok"}`, body)
	assert.Equal(t, []string{"a", "b"}, saves.lastFetch.Keys)

	status, _ = doRequest(t, m, http.MethodGet, "/api/v1/containers/slot/blobs", "tok-ada", "")
	assert.Equal(t, http.StatusBadRequest, status)

	saves.fetchResp = &gamesave.FetchBlobsResponse{Outcome: domain.OutcomeContainerSyncFailed}
	status, body = doRequest(t, m, http.MethodGet, "/api/v1/containers/slot/blobs?keys=a", "tok-ada", "")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.JSONEq(t, `{"container":"slot","blobs":{},"outcome":"container_sync_failed"}`, body)
}

func TestAPI_DeleteContainer(t *testing.T) {
	saves := &mockSaves{outcomeResp: &gamesave.OutcomeResponse{Outcome: domain.OutcomeOK}}
	m := newTestModule(saves, &mockActivity{})

	status, body := doRequest(t, m, http.MethodDelete, "/api/v1/containers/slot/blobs", "tok-ada", "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"outcome":"ok"}`, body)

	saves.err = errors.New("nats: timeout")
	status, _ = doRequest(t, m, http.MethodDelete, "/api/v1/containers/slot/blobs", "tok-ada", "")
	assert.Equal(t, http.StatusBadGateway, status)
}

func TestAPI_Profile(t *testing.T) {
	saves := &mockSaves{outcomeResp: &gamesave.OutcomeResponse{Outcome: domain.OutcomeOK}}
	m := newTestModule(saves, &mockActivity{})

	status, _ := doRequest(t, m, http.MethodPut, "/api/v1/profile", "tok-ada", `{"score":42,"nickname":"Ada","tutorial_done":true}`)
	assert.Equal(t, http.StatusOK, status)
	require.NotNil(t, saves.lastSave)
	assert.Equal(t, int32(42), saves.lastSave.Profile.Score)
	assert.Equal(t, "Ada", saves.lastSave.Profile.Nickname)
	assert.True(t, saves.lastSave.Profile.Tutorial)

	saves.loadResp = &gamesave.LoadProfileResponse{Assigned: 9, Outcome: domain.OutcomeOK}
	saves.loadResp.Profile.Score = 42
	status, body := doRequest(t, m, http.MethodGet, "/api/v1/profile", "tok-ada", "")
	assert.Equal(t, http.StatusOK, status)

	var resp ProfileResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	assert.Equal(t, int32(42), resp.Profile.Score)
	assert.Equal(t, 9, resp.Assigned)
	assert.Equal(t, domain.OutcomeOK, resp.Outcome)
}

func TestAPI_Activity(t *testing.T) {
	act := &mockActivity{}
	m := newTestModule(&mockSaves{}, act)

	status, body := doRequest(t, m, http.MethodGet, "/api/v1/activity?limit=5", "tok-ada", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "id-ada", act.lastPlayer)

	var resp ActivityResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	assert.Equal(t, 1, resp.Total)

	status, _ = doRequest(t, m, http.MethodGet, "/api/v1/activity", "bogus", "")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAPI_Health(t *testing.T) {
	m := newTestModule(&mockSaves{}, &mockActivity{})

	status, body := doRequest(t, m, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"status":"healthy"`)
	assert.True(t, m.Health(context.Background()).Healthy)
}

func TestAPI_StartRequiresDependencies(t *testing.T) {
	assert.Error(t, NewModule(0).Start(context.Background()))
}

func TestSplitKeys(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitKeys(" a , b ,"))
	assert.Nil(t, splitKeys(""))
}
