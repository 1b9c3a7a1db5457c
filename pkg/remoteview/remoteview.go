// Package remoteview presents a login form to a browser over a websocket.
//
// Each connection gets its own view-model, session state and dispatch
// queue. The queue is the connection's presentation thread: client frames,
// view-model completions and every websocket write run on it.
package remoteview

import (
	"context"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/Rahulguptaid/ViewModelExample/pkg/binding"
	"github.com/Rahulguptaid/ViewModelExample/pkg/dispatch"
	"github.com/Rahulguptaid/ViewModelExample/pkg/network"
	"github.com/Rahulguptaid/ViewModelExample/pkg/session"
	"github.com/Rahulguptaid/ViewModelExample/pkg/viewmodel"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
)

const (
	writeWait    = 5 * time.Second
	maxFrameSize = 64 << 10
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Handler upgrades requests and serves one login view per connection.
type Handler struct {
	auth     network.Authenticator
	upgrader websocket.Upgrader
	logger   *slog.Logger
	vmOpts   []viewmodel.Option
	active   atomic.Int64
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the handler logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithViewModelOptions adds options applied to every connection's
// view-model. The dispatcher is always the connection queue.
func WithViewModelOptions(opts ...viewmodel.Option) Option {
	return func(h *Handler) {
		h.vmOpts = append(h.vmOpts, opts...)
	}
}

// WithCheckOrigin sets the upgrader's origin check.
func WithCheckOrigin(fn func(*http.Request) bool) Option {
	return func(h *Handler) {
		h.upgrader.CheckOrigin = fn
	}
}

// NewHandler creates a handler whose views sign in through auth.
func NewHandler(auth network.Authenticator, opts ...Option) *Handler {
	h := &Handler{
		auth:   auth,
		logger: slog.Default(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	h.logger = h.logger.With("component", "remoteview")
	return h
}

// Active returns the number of open views.
func (h *Handler) Active() int64 {
	return h.active.Load()
}

// ServeHTTP upgrades the connection and blocks until the view closes.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", "error", err)
		return
	}
	conn.SetReadLimit(maxFrameSize)

	h.active.Add(1)
	defer h.active.Add(-1)

	v := h.newView(conn)
	v.logger.Debug("view opened")
	v.run(r.Context())
	v.logger.Debug("view closed")
}

// view is one connection's presentation layer. It owns the view-model;
// the view-model only knows the hooks the view installs.
type view struct {
	id       string
	conn     *websocket.Conn
	queue    *dispatch.Queue
	vm       *viewmodel.LoginViewModel
	email    *binding.TextField
	password *binding.TextField
	logger   *slog.Logger
}

func (h *Handler) newView(conn *websocket.Conn) *view {
	id := uuid.NewString()
	logger := h.logger.With("view_id", id)
	queue := dispatch.NewQueue(dispatch.DefaultQueueSize, logger)

	opts := append([]viewmodel.Option{viewmodel.WithLogger(logger)}, h.vmOpts...)
	opts = append(opts, viewmodel.WithDispatcher(queue))

	v := &view{
		id:       id,
		conn:     conn,
		queue:    queue,
		vm:       viewmodel.NewLogin(h.auth, session.New(), opts...),
		email:    binding.NewTextField(),
		password: binding.NewTextField(),
		logger:   logger,
	}
	v.mount()
	return v
}

// mount wires controls, cells and hooks.
func (v *view) mount() {
	binding.TwoWay(v.email, v.vm.Email)
	binding.TwoWay(v.password, v.vm.Password)

	// Only the email is echoed; the password never leaves the server.
	v.vm.Email.Observe(func(s string) {
		v.send(Frame{Type: FrameField, Field: FieldEmail, Value: s})
	})

	v.vm.Hooks = viewmodel.Hooks{
		ShowAlert: func() {
			f := Frame{Type: FrameAlert}
			if msg, ok := v.vm.LastError(); ok {
				f.Message = &msg
			}
			v.send(f)
		},
		UpdateLoadingStatus: func() {
			loading := v.vm.IsLoading()
			v.send(Frame{Type: FrameLoading, Loading: &loading})
		},
		DidFinishFetch: func() {
			v.send(Frame{Type: FrameFinished, UserID: v.vm.Session().UserID()})
		},
	}
}

func (v *view) run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer v.conn.Close()
	defer v.queue.Close()

	v.queue.Dispatch(func() { v.send(Frame{Type: FrameHello, ID: v.id}) })
	go v.readLoop(ctx)

	_ = v.queue.Run(ctx)
}

// readLoop decodes client frames and hands them to the queue. It closes
// the queue when the connection goes away.
func (v *view) readLoop(ctx context.Context) {
	defer v.queue.Close()

	for {
		_, data, err := v.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				v.logger.Warn("read failed", "error", err)
			}
			return
		}

		var f Frame
		if err := json.Unmarshal(data, &f); err != nil {
			v.logger.Warn("invalid frame", "error", err)
			continue
		}
		v.queue.Dispatch(func() { v.handle(ctx, f) })
	}
}

// handle applies a client frame. Runs on the queue.
func (v *view) handle(ctx context.Context, f Frame) {
	switch f.Type {
	case FrameInput:
		switch f.Field {
		case FieldEmail:
			v.email.Edit(f.Value)
		case FieldPassword:
			v.password.Edit(f.Value)
		default:
			v.logger.Warn("unknown field", "field", f.Field)
		}
	case FrameSubmit:
		res := v.vm.Validate()
		v.send(Frame{Type: FrameRules, Rules: res.Rules()})
		if res.Valid() {
			v.vm.SignIn(ctx)
		}
	default:
		v.logger.Warn("unknown frame type", "type", f.Type)
	}
}

// send writes a frame. Runs on the queue, the connection's only writer.
func (v *view) send(f Frame) {
	data, err := json.Marshal(f)
	if err != nil {
		v.logger.Error("encode frame", "error", err)
		return
	}
	_ = v.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := v.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		v.logger.Debug("write failed", "error", err)
		v.queue.Close()
	}
}
