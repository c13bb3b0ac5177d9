package token

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"rez/pkg/logging"
)

// secretKeySize is the size of the process-wide signing key in bytes.
const secretKeySize = 32

// Signer mints and verifies HMAC-SHA256 signed bearer tokens. A token is
// self-describing: the payload and expiry travel inside it, so no server
// side storage is needed to verify one.
//
// Wire format: base64url(payload|expiry) "." base64url(tag), unpadded.
type Signer struct {
	key []byte
}

// NewSigner creates a signer with a freshly generated random key. The key
// lives for the process lifetime only; a restart invalidates every
// outstanding token, which is accepted given the short TTLs involved.
func NewSigner() (*Signer, error) {
	key := make([]byte, secretKeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generating secret key: %w", err)
	}
	return &Signer{key: key}, nil
}

// NewSignerWithKey creates a signer with an explicit key. Intended for
// tests that need deterministic tokens.
func NewSignerWithKey(key []byte) *Signer {
	return &Signer{key: key}
}

// Mint creates a signed token carrying payload, valid for ttl from now.
func (s *Signer) Mint(payload string, ttl time.Duration) string {
	expiry := time.Now().Add(ttl).Unix()
	message := fmt.Sprintf("%s|%d", payload, expiry)

	mac := hmac.New(sha256.New, s.key)
	mac.Write([]byte(message))
	tag := mac.Sum(nil)

	return base64.RawURLEncoding.EncodeToString([]byte(message)) +
		"." + base64.RawURLEncoding.EncodeToString(tag)
}

// Verify checks a token's structure, signature and expiry. It fails
// closed: any malformed input yields ("", false). The signature is
// checked with a constant-time comparison before the expiry is even
// parsed, so structural failures past that point reveal nothing about
// the tag.
func (s *Signer) Verify(tok string) (string, bool) {
	encMessage, encTag, found := strings.Cut(tok, ".")
	if !found {
		logging.Info("Token", "Invalid token, missing separator | %s", tok)
		return "", false
	}

	message, err := decodeSegment(encMessage)
	if err != nil {
		logging.Info("Token", "Invalid token, undecodable payload segment | %s", tok)
		return "", false
	}
	tag, err := decodeSegment(encTag)
	if err != nil {
		logging.Info("Token", "Invalid token, undecodable signature segment | %s", tok)
		return "", false
	}

	mac := hmac.New(sha256.New, s.key)
	mac.Write(message)
	if !hmac.Equal(mac.Sum(nil), tag) {
		logging.Info("Token", "Token verification failed, signature mismatch | %s", tok)
		return "", false
	}

	idx := strings.LastIndexByte(string(message), '|')
	if idx < 0 {
		logging.Info("Token", "Invalid token, malformed message | %s", tok)
		return "", false
	}
	payload, expiryStr := string(message[:idx]), string(message[idx+1:])

	expiry, err := strconv.ParseInt(expiryStr, 10, 64)
	if err != nil {
		logging.Info("Token", "Invalid token, unparsable expiry | %s", tok)
		return "", false
	}

	if time.Now().Unix() > expiry {
		logging.Info("Token", "Token expired at %s | %s", time.Unix(expiry, 0).Format(time.RFC3339), tok)
		return "", false
	}

	return payload, true
}

// decodeSegment accepts both padded and unpadded base64url input; tokens
// minted here are always unpadded.
func decodeSegment(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "="))
}
