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
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/kuvert/kuvert/internal/accounts"
	"github.com/kuvert/kuvert/internal/command"
	"github.com/kuvert/kuvert/internal/log"
	"github.com/kuvert/kuvert/internal/storage"
)

var errCloseSession = errors.New("pop3: session closed")

type handler func(context.Context, *session, *command.Command) error

var (
	rUnknownMailbox = reply{false, "never heard of mailbox name"}
	rNotLoggedIn    = reply{false, "not logged in"}
	rNoMessage      = reply{false, "no such message"}
)

// `USER` command as specified in RFC#1939
//
//     "USER" <mailbox> CRLF
func user(directory accounts.Directory) handler {
	rOk := reply{true, "name is a valid mailbox"}

	return func(ctx context.Context, s *session, c *command.Command) error {
		name := c.Param(0)

		if _, ok := directory.Lookup(name); !ok {
			log.DebugContext(ctx).
				Str("name", name).
				Msg("unknown mailbox name")

			return s.send(&rUnknownMailbox)
		}

		// reissuing USER resets the identity, whatever the state
		s.name = name
		s.state = sUser

		return s.send(&rOk)
	}
}

// `PASS` command as specified in RFC#1939
//
//     "PASS" <password> CRLF
func pass(directory accounts.Directory, store *storage.Store) handler {
	var (
		rOk        = reply{true, "maildrop locked and ready"}
		rWrongPass = reply{false, "invalid password"}
	)

	return func(ctx context.Context, s *session, c *command.Command) error {
		account, ok := directory.Lookup(s.name)
		if !ok {
			return s.send(&rUnknownMailbox)
		}

		if account.Password != c.Param(0) {
			log.DebugContext(ctx).
				Str("name", s.name).
				Msg("wrong password")

			return s.send(&rWrongPass)
		}

		mailbox, err := store.Mailbox(account.Name)
		if err != nil {
			return err
		}

		s.mailbox = mailbox
		s.slots = nil // force a fresh scan on the next STAT
		s.state = sTransaction

		log.InfoContext(ctx).
			Str("account", account.Name).
			Msg("mailbox ready")

		return s.send(&rOk)
	}
}

// `STAT` command as specified in RFC#1939
//
//     "STAT" CRLF
func stat() handler {
	return func(ctx context.Context, s *session, _ *command.Command) error {
		if !s.state.in(sTransaction) {
			return s.send(&rNotLoggedIn)
		}

		if err := s.rescan(); err != nil {
			return err
		}

		count, size := s.stats()

		return s.send(&reply{true, fmt.Sprintf("%d %d", count, size)})
	}
}

// `LIST` command as specified in RFC#1939
//
//     "LIST" CRLF
//
// Operates on the slot sequence built by STAT; it does not rescan the
// mailbox itself.
func list() handler {
	rOk := reply{true, "Mailbox scan listing follows"}

	return func(ctx context.Context, s *session, _ *command.Command) error {
		if !s.state.in(sTransaction) {
			return s.send(&rNotLoggedIn)
		}

		if err := s.send(&rOk); err != nil {
			return err
		}

		for i, slot := range s.slots {
			if slot.state != slotLive {
				continue
			}

			fmt.Fprintf(s, "%d %d", i+1, slot.size)
			s.Endline()
		}

		s.WriteString(".")
		s.Endline()

		return s.Flush()
	}
}

// `RETR` command as specified in RFC#1939
//
//     "RETR" <number> CRLF
//
// Also handles `TOP`, which degrades to a full retrieval because partial
// bodies are not implemented.
func retr() handler {
	return func(ctx context.Context, s *session, c *command.Command) error {
		if !s.state.in(sTransaction) {
			return s.send(&rNotLoggedIn)
		}

		number, slot := liveSlot(s, c)
		if slot == nil {
			return s.send(&rNoMessage)
		}

		r, err := s.mailbox.Reader(slot.id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				// raced by a concurrent delete; the slot stays live
				return s.send(&rNoMessage)
			}

			return err
		}

		if err := s.send(&reply{true, fmt.Sprintf("%d octets", slot.size)}); err != nil {
			r.Close()
			return err
		}

		if _, err := io.Copy(s, r); err != nil {
			r.Close()
			return err
		}

		r.Close()

		log.DebugContext(ctx).
			Int("slot", number).
			Str("id", slot.id).
			Msg("message retrieved")

		s.Endline()
		s.WriteString(".")
		s.Endline()

		return s.Flush()
	}
}

// `UIDL` command as specified in RFC#1939
//
//     "UIDL" [ <number> ] CRLF
func uidl() handler {
	rOk := reply{true, ""}

	return func(ctx context.Context, s *session, c *command.Command) error {
		if !s.state.in(sTransaction) {
			return s.send(&rNotLoggedIn)
		}

		if len(c.Params) > 0 {
			number, slot := liveSlot(s, c)
			if slot == nil {
				return s.send(&rNoMessage)
			}

			return s.send(&reply{true, fmt.Sprintf("%d %s", number, slot.id)})
		}

		if err := s.send(&rOk); err != nil {
			return err
		}

		for i, slot := range s.slots {
			if slot.state != slotLive {
				continue
			}

			fmt.Fprintf(s, "%d %s", i+1, slot.id)
			s.Endline()
		}

		s.WriteString(".")
		s.Endline()

		return s.Flush()
	}
}

// `DELE` command as specified in RFC#1939
//
//     "DELE" <number> CRLF
//
// The message file moves into the mailbox's `deleted` folder and the slot
// becomes a tombstone. Slot numbers of other messages never change.
func dele() handler {
	return func(ctx context.Context, s *session, c *command.Command) error {
		if !s.state.in(sTransaction) {
			return s.send(&rNotLoggedIn)
		}

		number, ok := messageNumber(c)
		if !ok {
			return s.send(&rNoMessage)
		}

		slot := s.slotByNumber(number)
		if slot == nil {
			return s.send(&rNoMessage)
		}

		if slot.state == slotTombstone {
			return s.send(&reply{false, fmt.Sprintf("message %d already deleted", number)})
		}

		if err := s.mailbox.SoftDelete(slot.id); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				// raced by another session; the slot stays live
				return s.send(&rNoMessage)
			}

			return err
		}

		slot.state = slotTombstone

		log.InfoContext(ctx).
			Int("slot", number).
			Str("id", slot.id).
			Msg("message deleted")

		return s.send(&reply{true, fmt.Sprintf("message %d deleted", number)})
	}
}

// `QUIT` command as specified in RFC#1939
//
//     "QUIT" CRLF
func quit() handler {
	rBye := reply{true, "POP3 server signing off (maildrop empty)"}

	return func(ctx context.Context, s *session, _ *command.Command) error {
		if err := s.send(&rBye); err != nil {
			return err
		}

		return errCloseSession
	}
}

// messageNumber parses the first parameter as a 1-based message number.
func messageNumber(c *command.Command) (int, bool) {
	number, err := strconv.Atoi(c.Param(0))
	if err != nil {
		return 0, false
	}

	return number, true
}

// liveSlot resolves the first parameter to a live slot, or nil when the
// number is unparsable, out of range or tombstoned.
func liveSlot(s *session, c *command.Command) (int, *slot) {
	number, ok := messageNumber(c)
	if !ok {
		return 0, nil
	}

	slot := s.slotByNumber(number)
	if slot == nil || slot.state != slotLive {
		return number, nil
	}

	return number, slot
}
