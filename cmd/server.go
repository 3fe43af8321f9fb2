// Package main はcoiserveサーバーコマンドの実装です
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"coiserve/internal/config"
	"coiserve/internal/server"

	"github.com/gin-gonic/gin"
)

// options はコマンドラインオプション
type options struct {
	host        *string
	port        *int
	root        *string
	logRequests *bool
	printConfig *bool
	help        *bool
}

// bindFlags はフラグセットにオプションを登録する
func bindFlags(fs *flag.FlagSet) *options {
	return &options{
		host:        fs.String("host", "", "サーバーのホスト (デフォルト: 全インターフェース)"),
		port:        fs.Int("port", config.DefaultPort, "サーバーのポート (0 ならランダム)"),
		root:        fs.String("root", "", "配信するディレクトリ (デフォルト: カレントディレクトリ)"),
		logRequests: fs.Bool("log-requests", false, "リクエストごとのアクセスログを出力"),
		printConfig: fs.Bool("print-config", false, "有効な設定をYAMLで表示して終了"),
		help:        fs.Bool("help", false, "ヘルプを表示"),
	}
}

// apply は明示的に指定されたオプションだけで設定を上書きする
func (o *options) apply(fs *flag.FlagSet, cfg *config.Config) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "host":
			cfg.Server.Host = *o.host
		case "port":
			cfg.Server.Port = *o.port
		case "root":
			cfg.Server.Root = *o.root
		case "log-requests":
			cfg.Server.LogRequests = *o.logRequests
		}
	})
}

// writeConfig は有効な設定をYAMLで書き出す
func writeConfig(w io.Writer, cfg *config.Config) error {
	out, err := cfg.YAML()
	if err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("設定の出力に失敗: %w", err)
	}
	return nil
}

func main() {
	// コマンドラインオプション
	opts := bindFlags(flag.CommandLine)
	flag.Parse()

	// ヘルプ表示
	if *opts.help {
		fmt.Println("coiserve - COOP/COEP ヘッダー付き静的ファイルサーバー")
		fmt.Println()
		fmt.Println("使用方法:")
		fmt.Println("  server [オプション]")
		fmt.Println()
		fmt.Println("オプション:")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if os.Getenv(gin.EnvGinMode) == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	// コマンドラインオプションで設定を上書き
	opts.apply(flag.CommandLine, cfg)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("設定の検証に失敗しました: %v", err)
	}

	if *opts.printConfig {
		if err := writeConfig(os.Stdout, cfg); err != nil {
			log.Fatalf("設定の表示に失敗しました: %v", err)
		}
		return
	}

	srv := server.New(cfg)
	if err := srv.Start(context.Background()); err != nil {
		log.Fatalf("サーバーの起動に失敗しました: %v", err)
	}
}
