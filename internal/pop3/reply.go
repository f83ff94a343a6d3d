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
	"github.com/kuvert/kuvert/internal/textproto"
)

// reply is a single status line of the form
//
//     ("+OK" / "-ERR") [<SP> <text>] <CR> <LF>
type reply struct {
	ok   bool
	text string
}

func (r *reply) writeTo(w textproto.Writer) error {
	if r.ok {
		w.WriteString("+OK")
	} else {
		w.WriteString("-ERR")
	}

	if r.text != "" {
		w.WriteString(" ")
		w.WriteString(r.text)
	}

	w.Endline()

	return w.Flush()
}
