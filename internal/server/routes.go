package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/malags/hyperplane-chess/internal/httpapi"
)

// SetupRoutes builds the router with the hub injected.
func SetupRoutes(h *Hub, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Post("/newGame", NewGame(h, log))
	r.Get("/socket", SocketHandler(h, log))
	r.Get("/healthz", Healthz)
	return r
}

// NewGame creates a match and returns the session id to join.
func NewGame(h *Hub, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req httpapi.NewGameRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request body", http.StatusBadRequest)
			return
		}
		if err := req.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		id := uuid.NewString()
		reply := make(chan *Session, 1)
		h.Inbox() <- CreateSession{
			ID: id,
			Settings: Settings{
				NrBoards:  req.NrBoards,
				BoardSize: req.BoardSize,
				NrPlayers: req.NrPlayers,
				NrGroups:  req.NrGroups,
			},
			Reply: reply,
		}
		if <-reply == nil {
			http.Error(w, "failed to create session", http.StatusInternalServerError)
			return
		}
		log.Info("new game created", zap.String("id", id),
			zap.Int("nrBoards", req.NrBoards), zap.Int("boardSize", req.BoardSize))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(struct {
			ID string `json:"id"`
		}{ID: id})
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
