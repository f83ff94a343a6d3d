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

package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	for _, testCase := range []struct {
		line   string
		verb   string
		params []string
	}{
		{"QUIT", "QUIT", nil},
		{"USER alex@testserver", "USER", []string{"alex@testserver"}},
		{"TOP 1 10", "TOP", []string{"1", "10"}},
		{"MAIL FROM:<a@b>", "MAIL", []string{"FROM:<a@b>"}},
		{"MAIL FROM: <a@b>", "MAIL", []string{"FROM:", "<a@b>"}},
		{"LIST   ", "LIST", nil},
		{"UIDL  2", "UIDL", []string{"2"}},
		{"", "", nil},
		{"quit", "quit", nil}, // verbs are not case folded
	} {
		var cmd Command
		cmd.Parse([]byte(testCase.line))

		assert.Equal(t, testCase.verb, cmd.Verb, testCase.line)
		assert.Len(t, cmd.Params, len(testCase.params), testCase.line)

		for i, param := range testCase.params {
			assert.Equal(t, param, cmd.Param(i), testCase.line)
		}
	}
}

func TestParamOutOfRange(t *testing.T) {
	var cmd Command
	cmd.Parse([]byte("RETR 1"))

	assert.Equal(t, "1", cmd.Param(0))
	assert.Equal(t, "", cmd.Param(1))
}

func TestParseReusesCommand(t *testing.T) {
	var cmd Command

	cmd.Parse([]byte("USER alex@testserver"))
	cmd.Parse([]byte("STAT"))

	assert.Equal(t, "STAT", cmd.Verb)
	assert.Empty(t, cmd.Params)
}
