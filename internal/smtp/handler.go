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
	"context"
	"errors"
	"strings"

	"github.com/kuvert/kuvert/internal/command"
	"github.com/kuvert/kuvert/internal/log"
)

var errCloseSession = errors.New("smtp: session closed")

type handler func(context.Context, *session, *command.Command) error

var rOk = reply{250, "Ok"}

// `HELO` command as specified in RFC#5321 4.1.1.1
//
//     "HELO" SP <Domain> CRLF
func helo() handler {
	rHelo := reply{250, ""}

	return func(_ context.Context, s *session, _ *command.Command) error {
		return s.send(&rHelo)
	}
}

// `EHLO` command as specified in RFC#5321 4.1.1.1
//
//     "EHLO" SP <Domain OR address-literal> CRLF
//
// No extensions are announced.
func ehlo() handler {
	return func(_ context.Context, s *session, _ *command.Command) error {
		return s.send(&rOk)
	}
}

// `MAIL` command as specified in RFC#5321 4.1.1.2
//
//     "MAIL FROM:<" <Reverse-path> ">" CRLF
//
// The sender is informational only; delivery does not depend on it.
// Reissuing MAIL silently overwrites the previous sender.
func mail() handler {
	return func(ctx context.Context, s *session, c *command.Command) error {
		if addr, ok := extractAddress("FROM:", c); ok {
			s.from = addr

			log.DebugContext(ctx).
				Str("from", addr).
				Msg("sender noted")
		}

		return s.send(&rOk)
	}
}

// `RCPT` command as specified in RFC#5321 4.1.1.3
//
//     "RCPT TO:<" <Forward-path> ">" CRLF
//
// Recipients accumulate; duplicates are kept.
func rcpt() handler {
	return func(ctx context.Context, s *session, c *command.Command) error {
		if addr, ok := extractAddress("TO:", c); ok {
			s.to = append(s.to, addr)

			log.DebugContext(ctx).
				Str("to", addr).
				Int("recipientCount", len(s.to)).
				Msg("recipient added")
		}

		return s.send(&rOk)
	}
}

// `DATA` command as specified in RFC#5321 4.1.1.4
//
//     "DATA" CRLF
//
// Valid even without MAIL or RCPT first; with no recipients the finished
// message is silently discarded.
func data() handler {
	rStart := reply{354, "End data with <CR><LF>.<CR><LF>"}

	return func(ctx context.Context, s *session, _ *command.Command) error {
		if err := s.send(&rStart); err != nil {
			return err
		}

		log.DebugContext(ctx).Msg("receiving message content")

		s.mode = mData
		return nil
	}
}

// `RSET` command as specified in RFC#5321 4.1.1.5
//
//     "RSET" CRLF
//
// Deliberately a no-op beyond the positive reply: accumulated envelope
// state is kept. Some clients insist on sending RSET and are happy with
// the 250 alone.
func rset() handler {
	return func(_ context.Context, s *session, _ *command.Command) error {
		return s.send(&rOk)
	}
}

// `QUIT` command as specified in RFC#5321 4.1.1.10
//
//     "QUIT" CRLF
func quit() handler {
	rBye := reply{221, "Bye"}

	return func(ctx context.Context, s *session, _ *command.Command) error {
		if err := s.send(&rBye); err != nil {
			return err
		}

		return errCloseSession
	}
}

// extractAddress pulls the address out of a MAIL or RCPT argument. Both
// layouts produced by whitespace splitting are handled:
//
//     MAIL FROM:<alex@testserver>   -> Params ["FROM:<alex@testserver>"]
//     MAIL FROM: <alex@testserver>  -> Params ["FROM:", "<alex@testserver>"]
//
// The marker must match exactly, including case. Angle brackets are
// stripped, nothing is validated.
func extractAddress(marker string, c *command.Command) (string, bool) {
	if !strings.HasPrefix(c.Param(0), marker) {
		return "", false
	}

	arg := c.Param(0)
	if len(c.Params) > 1 {
		arg = c.Param(1)
	}

	for _, cut := range []string{marker, "<", ">"} {
		arg = strings.ReplaceAll(arg, cut, "")
	}

	return strings.TrimSpace(arg), true
}
