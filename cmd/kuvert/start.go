// Copyright (C) 2021  The kuvert authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"github.com/spf13/viper"

	"github.com/kuvert/kuvert/internal/log"
	"github.com/kuvert/kuvert/internal/pop3"
	"github.com/kuvert/kuvert/internal/smtp"
	"github.com/kuvert/kuvert/internal/textproto"
)

func init() {
	viper.SetDefault("smtp.address", "127.0.0.1:9125")
	viper.SetDefault("pop3.address", "127.0.0.1:9110")
}

type startCommand struct {
	SMTP *smtp.Proto
	POP3 *pop3.Proto
}

// run starts one server per protocol and blocks until the first of them
// fails.
func (s *startCommand) run() error {
	errc := make(chan error, 2)

	go listen(s.SMTP, "smtp", viper.GetString("smtp.address"), errc)
	go listen(s.POP3, "pop3", viper.GetString("pop3.address"), errc)

	return <-errc
}

func listen(proto textproto.Protocol, name, addr string, errc chan<- error) {
	log.Info().
		Str("protocol", name).
		Str("addr", addr).
		Msg("starting server")

	errc <- textproto.NewServer(proto).Listen(addr)
}
