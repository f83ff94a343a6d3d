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
	"time"

	"github.com/kuvert/kuvert/internal/command"
	"github.com/kuvert/kuvert/internal/storage"
	"github.com/kuvert/kuvert/internal/textproto"
)

type sessionState uint

const (
	sInit sessionState = iota
	sUser
	sTransaction
)

func (s sessionState) String() string {
	return [...]string{
		"init",
		"user",
		"transaction",
	}[s]
}

func (s sessionState) in(any ...sessionState) bool {
	for _, other := range any {
		if other == s {
			return true
		}
	}

	return false
}

type slotState uint8

const (
	slotLive slotState = iota
	slotTombstone
)

// slot is one position of the session's message sequence. Slot numbers are
// 1-based and stable for the lifetime of the session: deleting a message
// tombstones its slot instead of removing it, and rescans only ever append.
type slot struct {
	state slotState
	id    string
	size  int64
}

type session struct {
	textproto.Conn

	state   sessionState
	name    string
	mailbox *storage.Mailbox
	slots   []slot
}

func (s *session) send(r *reply) error {
	if err := s.SetWriteTimeout(time.Minute * 5); err != nil {
		return err
	}

	return r.writeTo(s)
}

func (s *session) read(c *command.Command) error {
	if err := s.SetReadTimeout(time.Minute * 5); err != nil {
		return err
	}

	return c.ReadFrom(s)
}

// rescan reconciles the slot sequence with the mailbox directory. Message
// files without a slot are appended at the end; existing slots are never
// renumbered or removed.
func (s *session) rescan() error {
	entries, err := s.mailbox.Entries()
	if err != nil {
		return err
	}

	known := make(map[string]bool, len(s.slots))
	for _, slot := range s.slots {
		known[slot.id] = true
	}

	for _, entry := range entries {
		if !known[entry.ID] {
			s.slots = append(s.slots, slot{
				state: slotLive,
				id:    entry.ID,
				size:  entry.Size,
			})
		}
	}

	return nil
}

// slotByNumber resolves a 1-based slot number.
func (s *session) slotByNumber(number int) *slot {
	index := number - 1

	if index < 0 || index >= len(s.slots) {
		return nil
	}

	return &s.slots[index]
}

// stats returns count and total byte size of all live slots.
func (s *session) stats() (count int, size int64) {
	for _, slot := range s.slots {
		if slot.state == slotLive {
			count++
			size += slot.size
		}
	}

	return
}
