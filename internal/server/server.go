// Package server はwebsocket越しにゲームをプレイさせるHTTPサーバー
package server

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/nnaakkaaii/tilemerge/internal/domain"
	"github.com/nnaakkaaii/tilemerge/internal/player"
	"github.com/nnaakkaaii/tilemerge/internal/usecase"
)

// メッセージの種類
const (
	TypeMove   = "move"
	TypeQuit   = "quit"
	TypeState  = "state"
	TypeNotice = "notice"
)

// Message はクライアントとの間でやり取りするJSONメッセージ
type Message struct {
	T     string           `json:"t"`
	Dir   string           `json:"dir,omitempty"`
	State *domain.Snapshot `json:"state,omitempty"`
	Text  string           `json:"text,omitempty"`
}

// Config はサーバーの設定
type Config struct {
	Size int
	// AllowOrigins が空なら全てのOriginを許可する
	AllowOrigins []string
	// NewRand は接続ごとの乱数源を生成する
	NewRand func() domain.Rand
	Logger  *slog.Logger
}

// DefaultConfig はデフォルトの設定を返す
func DefaultConfig() Config {
	return Config{
		Size: 4,
		NewRand: func() domain.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
		Logger: slog.Default(),
	}
}

// Server は接続ごとに1つのゲームを持つ
type Server struct {
	config Config
	allow  map[string]bool
	mux    *http.ServeMux
}

// New は新しいServerを生成する
func New(config Config) *Server {
	if config.Size < 1 {
		config.Size = DefaultConfig().Size
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.NewRand == nil {
		config.NewRand = DefaultConfig().NewRand
	}
	s := &Server{
		config: config,
		allow:  map[string]bool{},
		mux:    http.NewServeMux(),
	}
	for _, o := range config.AllowOrigins {
		if o != "" {
			s.allow[o] = true
		}
	}
	s.mux.HandleFunc("/ws", s.serveWS)
	s.mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	origin := r.Header.Get("Origin")
	if origin != "" && len(s.allow) > 0 && !s.allow[origin] {
		http.Error(w, "forbidden origin", http.StatusForbidden)
		return
	}

	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		s.config.Logger.Warn("websocket accept failed", "err", err)
		return
	}
	defer c.CloseNow()

	logger := s.config.Logger.With("remote", r.RemoteAddr)
	game, err := domain.NewGame(s.config.NewRand(), domain.GameConfig{Size: s.config.Size, Logger: logger})
	if err != nil {
		logger.Error("new game", "err", err)
		c.Close(websocket.StatusInternalError, "new game failed")
		return
	}
	logger.Info("session started", "size", s.config.Size)

	conn := &conn{c: c}
	summary, err := usecase.Run(r.Context(), game, conn, conn, usecase.SessionConfig{})
	logger = logger.With("score", summary.Score, "moves", summary.Moves, "max_tile", summary.MaxTile)
	if err != nil {
		if status := websocket.CloseStatus(err); status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
			logger.Info("session closed by client")
			return
		}
		logger.Warn("session ended with error", "err", err)
		return
	}
	logger.Info("session finished", "over", summary.Over)
	c.Close(websocket.StatusNormalClosure, "")
}

// conn はwebsocket接続をプレイヤーとDisplayとして扱う
type conn struct {
	c *websocket.Conn
}

func (c *conn) NextMove(ctx context.Context, _ *domain.Board) (string, error) {
	for {
		var m Message
		if err := wsjson.Read(ctx, c.c, &m); err != nil {
			return "", err
		}
		switch m.T {
		case TypeMove:
			return m.Dir, nil
		case TypeQuit:
			return "", player.ErrQuit
		default:
			if err := c.Notify("unknown message type: " + m.T); err != nil {
				return "", err
			}
		}
	}
}

func (c *conn) Render(s domain.Snapshot) error {
	return c.write(Message{T: TypeState, State: &s})
}

func (c *conn) Notify(msg string) error {
	return c.write(Message{T: TypeNotice, Text: msg})
}

func (c *conn) write(m Message) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := wsjson.Write(ctx, c.c, m); err != nil {
		return fmt.Errorf("write %s message: %w", m.T, err)
	}
	return nil
}
