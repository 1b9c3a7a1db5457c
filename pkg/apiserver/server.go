// Package apiserver is the demo backend answering the login and user
// directory requests made by pkg/network.
package apiserver

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Rahulguptaid/ViewModelExample/internal/fixtures"
	"github.com/Rahulguptaid/ViewModelExample/pkg/network"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

// Response codes of the demo backend.
const (
	ResponseFailure = 0
	ResponseSuccess = 1
)

// Messages returned with ResponseFailure.
const (
	MsgInvalidCredentials = "Invalid email or password"
	MsgNoUsers            = "No users found"
	MsgBadRequest         = "Malformed request"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Server serves the fixture data over HTTP.
type Server struct {
	data   *fixtures.Data
	router chi.Router
	logger *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a backend serving data.
func New(data *fixtures.Data, opts ...Option) *Server {
	s := &Server{
		data:   data,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "apiserver")

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Post(network.LoginPath, s.handleLogin)
	r.Get(network.UsersPath, s.handleUsers)
	s.router = r

	return s
}

// Router returns the chi router so callers can mount extra routes.
func (s *Server) Router() chi.Router {
	return s.router
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req network.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, network.LoginResult{
			Response: ResponseFailure,
			Msg:      MsgBadRequest,
		})
		return
	}

	acc, ok := s.data.Authenticate(req.Email, req.Password)
	if !ok {
		s.logger.Info("login rejected", "email", req.Email)
		s.writeJSON(w, http.StatusOK, network.LoginResult{
			Response: ResponseFailure,
			Msg:      MsgInvalidCredentials,
		})
		return
	}

	token, err := uuid.NewV7()
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, http.StatusOK, network.LoginResult{
		Response: ResponseSuccess,
		Msg:      "Login successful",
		UserID:   acc.UserID,
		Token:    token.String(),
	})
}

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("type")
	users := s.data.UsersIn(category)
	if len(users) == 0 {
		s.writeJSON(w, http.StatusOK, network.UsersResult{
			Response: ResponseFailure,
			Msg:      MsgNoUsers,
		})
		return
	}

	s.writeJSON(w, http.StatusOK, network.UsersResult{
		Response:     ResponseSuccess,
		PropertyList: users,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("write response", "error", err)
	}
}

// logRequests logs one line per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
