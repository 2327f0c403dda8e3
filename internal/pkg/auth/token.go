package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidToken = errors.New("invalid auth token")

// TokenCodec issues and verifies bearer tokens carrying a user identity.
type TokenCodec interface {
	Issue(userID int64) (string, error)
	Parse(token string) (int64, error)
}

// Options tunes token issuance.
type Options struct {
	TTL time.Duration
}

// HMACCodec signs tokens with HMAC-SHA256.
type HMACCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewHMACCodec builds HMACCodec with provided secret and options.
func NewHMACCodec(secret string, opts Options) *HMACCodec {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &HMACCodec{secret: []byte(secret), ttl: ttl}
}

// Issue generates a signed token for the user.
func (c *HMACCodec) Issue(userID int64) (string, error) {
	expires := time.Now().Add(c.ttl).Unix()
	payload := fmt.Sprintf("%d.%d", userID, expires)
	token := payload + "." + c.sign(payload)
	return base64.URLEncoding.EncodeToString([]byte(token)), nil
}

// Parse validates the token and returns the encoded user ID.
func (c *HMACCodec) Parse(token string) (int64, error) {
	raw, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return 0, ErrInvalidToken
	}

	parts := strings.Split(string(raw), ".")
	if len(parts) != 3 {
		return 0, ErrInvalidToken
	}

	payload := parts[0] + "." + parts[1]
	if !hmac.Equal([]byte(c.sign(payload)), []byte(parts[2])) {
		return 0, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}

	expires, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}

	if time.Unix(expires, 0).Before(time.Now()) {
		return 0, ErrInvalidToken
	}

	return userID, nil
}

func (c *HMACCodec) sign(payload string) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(payload))
	return base64.URLEncoding.EncodeToString(mac.Sum(nil))
}

// NewOpenID generates the open-identity token attached to a user at
// registration time.
func NewOpenID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
