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

package smtp

import (
	"bytes"
	"context"
	"io"

	"github.com/google/wire"
	"github.com/spf13/viper"

	"github.com/kuvert/kuvert/internal/command"
	"github.com/kuvert/kuvert/internal/log"
	"github.com/kuvert/kuvert/internal/storage"
	"github.com/kuvert/kuvert/internal/textproto"
)

func init() {
	viper.SetDefault("general.hostname", "localhost")
}

// WireSet is the provider set for dependency injection.
var WireSet = wire.NewSet(New)

// Proto is an smtp server protocol implementation.
type Proto struct {
	handlerMap map[string]handler
	store      *storage.Store
	hostname   string
}

// New creates a new Protocol instance to be used with a textproto Server.
//
// `general.hostname` is the server name announced in the greeting.
func New(store *storage.Store) *Proto {
	return &Proto{
		handlerMap: map[string]handler{
			"HELO": helo(),
			"EHLO": ehlo(),

			"MAIL": mail(),
			"RCPT": rcpt(),
			"DATA": data(),

			"RSET": rset(),
			"QUIT": quit(),
		},
		store:    store,
		hostname: viper.GetString("general.hostname"),
	}
}

// Handle accepts an smtp connection and handles all incoming traffic in a
// loop until the transmission is closed.
func (p *Proto) Handle(c textproto.Conn) {
	s := &session{
		Conn: c,
		mode: mCommand,
	}

	ctx := log.WithProtocol(c.Context(), "smtp")

	if err := s.send(&reply{220, p.hostname}); err != nil {
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
		line, err := s.readLine()
		if err != nil {
			return err
		}

		// in data mode lines are content, not commands
		if s.mode == mData {
			if err := p.consumeData(ctx, s, line); err != nil {
				return err
			}

			continue
		}

		cmd.Parse(line)
		ctx := log.WithCommand(ctx, cmd.Verb)

		h, ok := p.handlerMap[cmd.Verb]
		if !ok {
			log.DebugContext(ctx).Msg("unrecognized command")

			if err := s.send(&reply{500, "Unrecognized command " + cmd.Verb}); err != nil {
				return err
			}

			continue
		}

		if err := h(ctx, s, &cmd); err != nil {
			return err
		}
	}
}

// consumeData appends one line of message content, or finishes the
// transaction when the line is the end-of-data marker. The marker line
// itself is not part of the message.
func (p *Proto) consumeData(ctx context.Context, s *session, line []byte) error {
	if !bytes.Equal(bytes.TrimSpace(line), []byte(".")) {
		s.message.Write(line)
		s.message.WriteString("\r\n")

		return nil
	}

	return p.deliver(ctx, s)
}

var rQueued = reply{250, "OK: queued"}

// deliver stores an independent copy of the message for every accumulated
// recipient. A transaction without recipients is silently discarded.
func (p *Proto) deliver(ctx context.Context, s *session) error {
	for _, recipient := range s.to {
		mailbox, err := p.store.Mailbox(recipient)
		if err != nil {
			return err
		}

		id, err := mailbox.Store(bytes.NewReader(s.message.Bytes()))
		if err != nil {
			return err
		}

		log.InfoContext(ctx).
			Str("recipient", recipient).
			Str("id", id).
			Int("size", s.message.Len()).
			Msg("message stored")
	}

	if len(s.to) == 0 {
		log.DebugContext(ctx).Msg("message without recipients discarded")
	}

	s.reset()

	return s.send(&rQueued)
}
