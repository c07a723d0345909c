package streamchat

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// serverToken mints the client's own credential, a server-scoped claim set.
func serverToken(apiSecret string) (string, error) {
	return signClaims(apiSecret, jwt.MapClaims{"server": true})
}

func signClaims(apiSecret string, claims jwt.MapClaims) (string, error) {
	if apiSecret == "" {
		return "", &UsageError{Op: "sign token", Reason: "api secret is empty"}
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(apiSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// CreateToken issues a signed token for an end user, e.g. for delegated
// client-side authentication. exp and iat are unix timestamps passed through
// verbatim when non-zero; extra claims are carried unchanged.
func (c *Client) CreateToken(userID string, exp, iat int64, claims map[string]any) (string, error) {
	if userID == "" {
		return "", &UsageError{Op: "create token", Reason: "user id is required"}
	}
	payload := jwt.MapClaims{}
	for k, v := range claims {
		payload[k] = v
	}
	payload["user_id"] = userID
	if exp > 0 {
		payload["exp"] = exp
	}
	if iat > 0 {
		payload["iat"] = iat
	}
	return signClaims(c.apiSecret, payload)
}

// VerifyClaims parses a signed token and returns its claims. The signature
// must be an HMAC over the given secret.
func VerifyClaims(token, apiSecret string) (map[string]any, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(apiSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

// VerifyWebhook reports whether signature matches the hex HMAC-SHA256 digest
// of the raw webhook body. Mismatches return false, never an error.
func (c *Client) VerifyWebhook(body []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(c.apiSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
