package handler

import (
	"crypto/rsa"
	"encoding/base64"
	"math/big"

	"github.com/gofiber/fiber/v2"
)

// JWKSHandler publishes the session token verification key so sibling
// services can check sessions without calling back here
type JWKSHandler struct {
	publicKey *rsa.PublicKey
	keyID     string
}

type JWKS struct {
	Keys []JWK `json:"keys"`
}

type JWK struct {
	Kty string `json:"kty"`
	Use string `json:"use"`
	Kid string `json:"kid"`
	Alg string `json:"alg"`
	N   string `json:"n"`
	E   string `json:"e"`
}

func NewJWKSHandler(publicKey *rsa.PublicKey, keyID string) *JWKSHandler {
	return &JWKSHandler{
		publicKey: publicKey,
		keyID:     keyID,
	}
}

// Get returns the key set
// GET /.well-known/jwks.json
func (h *JWKSHandler) Get(c *fiber.Ctx) error {
	c.Set(fiber.HeaderCacheControl, "public, max-age=3600")
	return c.JSON(JWKS{
		Keys: []JWK{{
			Kty: "RSA",
			Use: "sig",
			Kid: h.keyID,
			Alg: "RS256",
			N:   base64.RawURLEncoding.EncodeToString(h.publicKey.N.Bytes()),
			E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(h.publicKey.E)).Bytes()),
		}},
	})
}
