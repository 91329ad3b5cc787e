package config

import (
	"context"
	"testing"

	"github.com/matryer/is"
)

func TestContext(t *testing.T) {
	is := is.New(t)
	is.True(FromContext(context.TODO()) == nil)

	cfg := DefaultConfig()
	cfg.Auth.JWTSecret = "shh"
	got := FromContext(WithContext(context.TODO(), cfg))
	is.True(got == cfg)
	is.Equal(got.Auth.JWTSecret, "shh")
}
