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

// Package command implements the line parsing shared by both protocol
// implementations.
//
// A command line has the form
//
//     <verb> [<SP> <param>]* <CR> <LF>
//
// The verb is looked up by each protocol in its own handler table, keyed by
// the canonical uppercase command names. The lookup is case-sensitive and
// what happens on a miss is protocol specific, so both of those concerns
// stay out of this package.
package command

import (
	"bytes"

	"github.com/kuvert/kuvert/internal/textproto"
)

// Command is one parsed command line.
type Command struct {
	// Verb is the first word of the line, verbatim.
	Verb string
	// Params are the remaining words in order.
	Params []string
}

// ReadFrom reads the next line and parses it in place.
func (c *Command) ReadFrom(r textproto.Reader) error {
	line, err := r.ReadLine()
	if err != nil {
		return err
	}

	c.Parse(line)
	return nil
}

// Parse splits a line into verb and params on whitespace runs.
func (c *Command) Parse(line []byte) {
	fields := bytes.Fields(line)

	c.Verb = ""
	c.Params = c.Params[:0]

	if len(fields) == 0 {
		return
	}

	c.Verb = string(fields[0])

	for _, field := range fields[1:] {
		c.Params = append(c.Params, string(field))
	}
}

// Param returns the i-th parameter or an empty string, when there are not
// that many.
func (c *Command) Param(i int) string {
	if i >= len(c.Params) {
		return ""
	}

	return c.Params[i]
}
