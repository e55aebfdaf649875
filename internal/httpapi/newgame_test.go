package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func validRequest() NewGameRequest {
	return NewGameRequest{NrBoards: 2, BoardSize: 5, NrPlayers: 2, NrGroups: 2}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*NewGameRequest)
		wantErr error
	}{
		{"valid", func(r *NewGameRequest) {}, nil},
		{"zero boards", func(r *NewGameRequest) { r.NrBoards = 0 }, ErrBadBoardCount},
		{"too many boards", func(r *NewGameRequest) { r.NrBoards = 9 }, ErrBadBoardCount},
		{"board too small", func(r *NewGameRequest) { r.BoardSize = 4 }, ErrBadBoardSize},
		{"board too big", func(r *NewGameRequest) { r.BoardSize = 13 }, ErrBadBoardSize},
		{"one group", func(r *NewGameRequest) { r.NrGroups = 1 }, ErrBadGroupCount},
		{"fewer players than groups", func(r *NewGameRequest) { r.NrPlayers = 1 }, ErrBadPlayerCount},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)
			err := req.Validate()
			if tc.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestCreateGame(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/newGame", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"abc123"}`))
	}))
	defer srv.Close()

	id, err := CreateGame(context.Background(), nil, srv.URL, validRequest())
	require.NoError(t, err)
	require.Equal(t, "abc123", id)
}

func TestCreateGameSurfacesResponseBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "movement file not found", http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := CreateGame(context.Background(), nil, srv.URL, validRequest())
	require.Error(t, err)
	require.Contains(t, err.Error(), "movement file not found")
}

func TestCreateGameValidatesBeforeSending(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	req := validRequest()
	req.NrBoards = 99
	_, err := CreateGame(context.Background(), nil, srv.URL, req)
	require.ErrorIs(t, err, ErrBadBoardCount)
	require.False(t, called)
}
