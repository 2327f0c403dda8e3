package auth

import (
	"go.uber.org/fx"

	"github.com/civiseek/civiseek/internal/config"
)

// Module provides authentication primitives via fx.
var Module = fx.Options(
	fx.Provide(newPasswordHasher),
	fx.Provide(newTokenCodec),
)

func newPasswordHasher() PasswordHasher {
	return NewBcryptHasher(0)
}

type codecParams struct {
	fx.In

	Config *config.Config
}

func newTokenCodec(p codecParams) TokenCodec {
	return NewHMACCodec(p.Config.JWTSecret, Options{})
}
