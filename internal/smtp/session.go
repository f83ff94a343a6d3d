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
	"time"

	"github.com/kuvert/kuvert/internal/textproto"
)

type sessionMode uint

const (
	// mCommand dispatches incoming lines as commands.
	mCommand sessionMode = iota
	// mData appends incoming lines to the message buffer until the
	// end-of-data marker arrives.
	mData
)

func (m sessionMode) String() string {
	return [...]string{
		"command",
		"data",
	}[m]
}

// session is the per-connection state. It is owned exclusively by the
// goroutine handling the connection; in particular the mode flag must never
// be shared between connections, or one client's DATA mode would leak into
// another's.
type session struct {
	textproto.Conn

	mode    sessionMode
	from    string
	to      []string
	message bytes.Buffer
}

// reset clears the envelope and the message buffer and returns the session
// to command mode.
func (s *session) reset() {
	s.from = ""
	s.to = nil
	s.message.Reset()
	s.mode = mCommand
}

func (s *session) send(r *reply) error {
	if err := s.SetWriteTimeout(time.Minute * 5); err != nil {
		return err
	}

	return r.writeTo(s)
}

func (s *session) readLine() ([]byte, error) {
	if err := s.SetReadTimeout(time.Minute * 5); err != nil {
		return nil, err
	}

	return s.ReadLine()
}
