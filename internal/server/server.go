package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"coiserve/internal/config"

	"github.com/fatih/color"
)

// State はサーバーの状態
type State int

const (
	StateStopped State = iota // 起動前
	StateServing              // 配信中
	StateClosed               // シャットダウン済み（再起動不可）
)

// String は状態の文字列表現を返す
func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateServing:
		return "serving"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ErrServerStarted は起動済みまたは停止済みのサーバーを再度起動したときのエラー
var ErrServerStarted = errors.New("サーバーは既に起動されています")

// Server はHTTPサーバーを管理する構造体
type Server struct {
	config     *config.Config
	httpServer *http.Server
	out        io.Writer // 起動メッセージの出力先

	mu       sync.Mutex
	state    State
	listener net.Listener
	root     *os.Root
	ready    chan struct{}
	done     chan struct{} // Shutdown の完了で閉じる
}

// shutdownTimeout はグレースフルシャットダウンの待ち時間
var shutdownTimeout = 5 * time.Second

// New は新しいServerインスタンスを作成する
func New(cfg *config.Config) *Server {
	return &Server{
		config: cfg,
		out:    os.Stdout,
		ready:  make(chan struct{}),
		done:   make(chan struct{}),
		httpServer: &http.Server{
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}
}

// SetOutput は起動メッセージの出力先を変更する
func (s *Server) SetOutput(w io.Writer) {
	s.out = w
}

// State は現在の状態を返す
func (s *Server) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Ready は配信を開始したときに閉じられるチャンネルを返す
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// Addr は実際にリッスンしているアドレスを返す（起動前はnil）
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// listen は配信ルートを開いてポートをバインドする
func (s *Server) listen() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateStopped {
		return ErrServerStarted
	}

	root, err := os.OpenRoot(s.config.Server.Root)
	if err != nil {
		return fmt.Errorf("配信ディレクトリを開けません: %w", err)
	}

	ln, err := net.Listen("tcp", s.config.ServerAddress())
	if err != nil {
		_ = root.Close()
		return fmt.Errorf("サーバーの起動に失敗: %w", err)
	}

	s.root = root
	s.listener = ln
	s.httpServer.Handler = NewEngine(s.config, newRootFS(root))
	s.state = StateServing

	port := ln.Addr().(*net.TCPAddr).Port
	color.New(color.FgGreen).Fprintf(s.out, "Server running on port %d\n", port)
	close(s.ready)

	return nil
}

// Start はサーバーを起動する
//
// バインドに成功すると配信を開始し、コンテキストのキャンセル、
// SIGINT/SIGTERM、または外部からの Shutdown までブロックする。
func (s *Server) Start(ctx context.Context) error {
	if err := s.listen(); err != nil {
		return err
	}

	// シャットダウン用のチャンネル
	shutdownCh := make(chan error, 1)

	// サーバーを別ゴルーチンで起動
	go func() {
		if err := s.httpServer.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			shutdownCh <- fmt.Errorf("サーバーの実行に失敗: %w", err)
		}
	}()

	// シグナルハンドリング
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	// コンテキストかシグナルを待つ
	select {
	case <-ctx.Done():
		log.Println("コンテキストがキャンセルされました")
	case sig := <-sigCh:
		log.Printf("シグナルを受信しました: %v", sig)
	case err := <-shutdownCh:
		_ = s.Shutdown()
		return err
	case <-s.done:
		// 外部から Shutdown された
		return nil
	}

	// グレースフルシャットダウン
	return s.Shutdown()
}

// Shutdown はサーバーをグレースフルにシャットダウンする
func (s *Server) Shutdown() error {
	s.mu.Lock()
	if s.state != StateServing {
		s.mu.Unlock()
		return nil
	}
	s.state = StateClosed
	s.mu.Unlock()

	defer close(s.done)

	log.Println("サーバーをシャットダウンしています...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// タイムアウトしても配信ルートは必ず閉じる
	var errs []error
	if err := s.httpServer.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("サーバーのシャットダウンに失敗: %w", err))
	}
	if err := s.root.Close(); err != nil {
		errs = append(errs, fmt.Errorf("配信ディレクトリのクローズに失敗: %w", err))
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}

	log.Println("サーバーが正常にシャットダウンされました")
	return nil
}
