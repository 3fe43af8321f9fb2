package server

import "github.com/gin-gonic/gin"

// クロスオリジン分離（crossOriginIsolated）に必要なヘッダー
const (
	HeaderOpenerPolicy   = "Cross-Origin-Opener-Policy"
	HeaderEmbedderPolicy = "Cross-Origin-Embedder-Policy"

	OpenerPolicySameOrigin    = "same-origin"
	EmbedderPolicyRequireCorp = "require-corp"
)

// IsolationHeaders はすべてのレスポンスにCOOP/COEPヘッダーを付与するミドルウェア
//
// ハンドラより先にヘッダーを設定するため、404や405などのエラー応答にも付与される。
func IsolationHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set(HeaderOpenerPolicy, OpenerPolicySameOrigin)
		h.Set(HeaderEmbedderPolicy, EmbedderPolicyRequireCorp)
		c.Next()
	}
}
