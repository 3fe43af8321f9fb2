package main

import (
	"context"
	"log"
	"os"

	"coiserve/internal/config"
	"coiserve/internal/server"

	"github.com/gin-gonic/gin"
)

func main() {
	// GIN_MODE が未指定ならデバッグ出力を抑止する
	if os.Getenv(gin.EnvGinMode) == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	// サーバーを作成
	srv := server.New(cfg)

	// サーバーを起動
	if err := srv.Start(context.Background()); err != nil {
		log.Fatalf("サーバーの起動に失敗しました: %v", err)
	}
}
