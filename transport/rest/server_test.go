package rest

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-rl/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rl/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rl/internal/policy"
	"github.com/rocketscienceinc/tictactoe-rl/internal/usecase"
)

var errBoom = errors.New("boom")

type failingAdvisor struct{}

func (failingAdvisor) Suggest(entity.Board, entity.Symbol) (usecase.Advice, error) {
	return usecase.Advice{}, errBoom
}

func newTestServer(advisor advisor) *httptest.Server {
	server := New(slog.New(slog.NewTextHandler(io.Discard, nil)), advisor)
	return httptest.NewServer(server.Handler())
}

func TestServer_Ping(t *testing.T) {
	srv := newTestServer(usecase.NewAdvisor(policy.NewValueTable(), entity.PlayerX))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/ping")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "pong", string(body))
}

func TestServer_Move(t *testing.T) {
	table := policy.NewValueTable(policy.WithLearningRate(1))
	board := entity.NewBoard().Place(0, entity.PlayerX)
	table.Update([]entity.Board{board.Place(4, entity.PlayerO)}, 1)

	srv := newTestServer(usecase.NewAdvisor(table, entity.PlayerO))
	defer srv.Close()

	t.Run("Suggests Move", func(t *testing.T) {
		// Given: a board with X in the corner
		payload := `{"board": ["X","","","","","","","",""], "symbol": "O"}`

		// When: ask for O's move
		resp, err := http.Post(srv.URL+"/move", "application/json", strings.NewReader(payload))
		require.NoError(t, err)
		defer resp.Body.Close()

		// Then: the learned center move is returned
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body moveResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, 4, body.Cell)
		assert.Equal(t, []string{"X", "", "", "", "O", "", "", "", ""}, body.Board)
		assert.Equal(t, entity.Ongoing(), body.Outcome)
	})

	tests := []struct {
		name    string
		payload string
		status  int
	}{
		{name: "Malformed Body", payload: `{"board":`, status: http.StatusBadRequest},
		{name: "Short Board", payload: `{"board": ["X"], "symbol": "O"}`, status: http.StatusBadRequest},
		{name: "Missing Symbol", payload: `{"board": ["","","","","","","","",""]}`, status: http.StatusBadRequest},
		{name: "Symbol Of The Other Seat", payload: `{"board": ["","","","","","","","",""], "symbol": "X"}`, status: http.StatusBadRequest},
		{name: "Multi Rune Symbol", payload: `{"board": ["X","","","","","","","",""], "symbol": "OO"}`, status: http.StatusBadRequest},
		{name: "Finished Game", payload: `{"board": ["X","X","X","O","O","","","",""], "symbol": "O"}`, status: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/move", "application/json", strings.NewReader(tt.payload))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.status, resp.StatusCode)

			var body errorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.NotEmpty(t, body.Error)
		})
	}

	t.Run("Wrong Method", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/move")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	})
}

func TestServer_Move_InternalError(t *testing.T) {
	srv := newTestServer(failingAdvisor{})
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/move", "application/json",
		strings.NewReader(`{"board": ["","","","","","","","",""], "symbol": "X"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
