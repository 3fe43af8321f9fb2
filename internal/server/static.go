package server

import (
	"errors"
	"io/fs"
	"net/http"
	"os"

	"coiserve/internal/config"

	"github.com/gin-gonic/gin"
)

// rootFS はos.Rootの外を指すパスを「存在しない」として扱うfs.FS
type rootFS struct {
	fsys fs.FS
}

// newRootFS はos.Rootを配信用のfs.FSに変換する
func newRootFS(root *os.Root) fs.FS {
	return rootFS{fsys: root.FS()}
}

// Open はファイルを開く
// ルート外へのシンボリックリンクなど、権限以外の失敗は fs.ErrNotExist に寄せる
func (r rootFS) Open(name string) (fs.File, error) {
	f, err := r.fsys.Open(name)
	if err == nil {
		return f, nil
	}
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return nil, err
	}
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}

// NewEngine は静的ファイル配信用のginエンジンを作成する
func NewEngine(cfg *config.Config, fsys fs.FS) *gin.Engine {
	engine := gin.New()
	// GET/HEAD 以外は 405 を返す
	engine.HandleMethodNotAllowed = true

	// Use で登録したミドルウェアは 404/405 の応答にも適用される
	engine.Use(IsolationHeaders())
	if cfg.Server.LogRequests {
		engine.Use(AccessLog())
	}
	engine.Use(gin.Recovery())

	static := gin.WrapH(http.FileServer(http.FS(fsys)))
	engine.GET("/*filepath", static)
	engine.HEAD("/*filepath", static)

	return engine
}
