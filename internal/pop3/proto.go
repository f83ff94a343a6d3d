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

package pop3

import (
	"context"
	"io"

	"github.com/google/wire"

	"github.com/kuvert/kuvert/internal/accounts"
	"github.com/kuvert/kuvert/internal/command"
	"github.com/kuvert/kuvert/internal/log"
	"github.com/kuvert/kuvert/internal/storage"
	"github.com/kuvert/kuvert/internal/textproto"
)

// WireSet is the provider set for dependency injection.
var WireSet = wire.NewSet(New)

// Proto is a pop3 protocol implementation.
type Proto struct {
	handlerMap map[string]handler
}

// New creates a new Protocol instance to be used with a textproto Server.
func New(directory accounts.Directory, store *storage.Store) *Proto {
	retr := retr()

	return &Proto{
		handlerMap: map[string]handler{
			"USER": user(directory),
			"PASS": pass(directory, store),

			"STAT": stat(),
			"LIST": list(),
			"RETR": retr,
			"TOP":  retr, // TOP degrades to a full retrieval
			"UIDL": uidl(),
			"DELE": dele(),

			"QUIT": quit(),
		},
	}
}

var rReady = reply{true, "POP3 server ready"}

// Handle accepts a pop3 connection and handles all incoming commands in a
// loop until the transmission is closed.
func (p *Proto) Handle(c textproto.Conn) {
	s := &session{
		Conn:  c,
		state: sInit,
	}

	ctx := log.WithProtocol(c.Context(), "pop3")

	if err := s.send(&rReady); err != nil {
		return
	}

	log.InfoContext(ctx).Msg("starting session")

	switch err := p.loop(ctx, s); err {
	case io.EOF, errCloseSession, nil:
		log.InfoContext(ctx).Msg("session closed")
	default:
		log.ErrorContext(ctx).
			Err(err).
			Msg("session closed with an error")
	}
}

func (p *Proto) loop(ctx context.Context, s *session) error {
	var cmd command.Command

	for {
		if err := s.read(&cmd); err != nil {
			return err
		}

		ctx := log.WithCommand(ctx, cmd.Verb)

		h, ok := p.handlerMap[cmd.Verb]
		if !ok {
			log.DebugContext(ctx).Msg("unrecognized command")

			if err := s.send(&reply{false, "Unrecognized command " + cmd.Verb}); err != nil {
				return err
			}

			continue
		}

		if err := h(ctx, s, &cmd); err != nil {
			return err
		}
	}
}
