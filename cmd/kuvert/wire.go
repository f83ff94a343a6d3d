// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/kuvert/kuvert/internal/accounts"
	"github.com/kuvert/kuvert/internal/crypto"
	"github.com/kuvert/kuvert/internal/pop3"
	"github.com/kuvert/kuvert/internal/smtp"
	"github.com/kuvert/kuvert/internal/storage"
)

var wireSet = wire.NewSet(
	wire.Struct(new(startCommand), "*"),
	wire.Struct(new(shellCommand), "*"),

	accounts.WireSet,
	crypto.WireSet,
	storage.WireSet,
	pop3.WireSet,
	smtp.WireSet,
)

func newStartCommand() (*startCommand, error) {
	panic(wire.Build(wireSet))
}

func newShellCommand() (*shellCommand, error) {
	panic(wire.Build(wireSet))
}
