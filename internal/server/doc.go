// Package server は、クロスオリジン分離用ヘッダーを付与する静的ファイルサーバーを提供します。
//
// このパッケージは、HTTPサーバーの起動、ルーティング、
// 静的ファイルの配信、レスポンスヘッダーの付与を担当します。
//
// 責務:
//   - HTTPサーバーの起動と管理（Stopped → Serving → Closed）
//   - 配信ルート配下のファイルとディレクトリ一覧の配信
//   - すべてのレスポンスへの COOP/COEP ヘッダーの付与
//   - 任意のアクセスログ出力
//
// 仕様:
//   - ルーティングとミドルウェアはgin-gonic/ginを使用
//   - ファイル配信そのものは標準ライブラリのhttp.FileServerに委譲
//   - 配信ルートはos.Rootで開き、ルート外へのアクセスを防ぐ
//   - グレースフルシャットダウンに対応
package server
