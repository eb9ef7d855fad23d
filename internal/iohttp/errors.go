package iohttp

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnweather/pkg/errcode"
)

// StartError is returned when the server cannot listen on its address.
func StartError(addr string, err error) error {
	msg := "Cannot start HTTP server on <em>%s</em>"
	return &gn.Error{
		Code: errcode.ServerStartError,
		Msg:  msg,
		Vars: []any{addr},
		Err:  fmt.Errorf("cannot listen on %s: %w", addr, err),
	}
}
