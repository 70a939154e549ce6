package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/DIMO-Network/server-garage/pkg/richerrors"
	"github.com/gofiber/fiber/v2"
)

// SignatureHeader carries the base64 HMAC-SHA256 of the raw request body.
const SignatureHeader = "X-Line-Signature"

var errSignatureMismatch = errors.New("request signature does not match body")

// Sign returns the base64 encoded HMAC-SHA256 of body keyed by secret.
func Sign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body) //nolint:errcheck // hash writes never fail
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Verify reports whether signature was produced for body with secret.
// An empty secret disables verification and every body is accepted. This is the
// platform's documented opt-out for unauthenticated deployments and is intentionally weak.
func Verify(body []byte, signature, secret string) bool {
	if secret == "" {
		return true
	}
	expected := Sign(body, secret)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}

// SignatureMiddleware rejects requests whose body signature does not verify against secret.
func SignatureMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !Verify(c.Body(), c.Get(SignatureHeader), secret) {
			return richerrors.Error{
				Code:        http.StatusBadRequest,
				Err:         errSignatureMismatch,
				ExternalMsg: "invalid signature",
			}
		}
		return c.Next()
	}
}
