package middleware

import (
	"bytes"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zullfi95/paulpay/internal/pkg/sign"
)

// SignatureHeader carries the gateway's HMAC signature over the callback body.
const SignatureHeader = "X-Algoritma-Signature"

// WebhookSignature rejects callbacks whose body signature does not verify.
// The body is restored for downstream handlers.
func WebhookSignature(verifier *sign.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		signature := c.GetHeader(SignatureHeader)
		if signature == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		if err := verifier.Verify(body, signature); err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}
}
