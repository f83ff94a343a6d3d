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

package log

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
)

func TestLogContextTestSuite(t *testing.T) {
	suite.Run(t, new(LogContextTestSuite))
}

type LogContextTestSuite struct {
	baseLogTestSuite
}

func (s *LogContextTestSuite) TestWithProtocol() {
	ctx := WithProtocol(context.TODO(), "pop3")
	InfoContext(ctx).Msg("TestWithProtocol")

	s.assertMsg("{\"level\":\"info\",\"protocol\":\"pop3\",\"message\":\"TestWithProtocol\"}\n")
}

func (s *LogContextTestSuite) TestWithCommand() {
	ctx := WithCommand(context.TODO(), "RETR")
	InfoContext(ctx).Msg("TestWithCommand")

	s.assertMsg("{\"level\":\"info\",\"command\":\"RETR\",\"message\":\"TestWithCommand\"}\n")
}

func (s *LogContextTestSuite) TestWithConnection() {
	ctx := WithConnection(context.TODO(), 123)
	InfoContext(ctx).Msg("TestWithConnection")

	s.assertMsg("{\"level\":\"info\",\"connection\":123,\"message\":\"TestWithConnection\"}\n")
}

func (s *LogContextTestSuite) TestWithAccount() {
	ctx := WithAccount(context.TODO(), "alex@testserver")
	InfoContext(ctx).Msg("TestWithAccount")

	s.assertMsg("{\"level\":\"info\",\"account\":\"alex@testserver\",\"message\":\"TestWithAccount\"}\n")
}

func (s *LogContextTestSuite) TestWithAll() {
	ctx := context.TODO()
	ctx = WithProtocol(ctx, "smtp")
	ctx = WithCommand(ctx, "DATA")
	ctx = WithConnection(ctx, 456)
	InfoContext(ctx).Msg("TestWithAll")

	s.assertMsg("{\"level\":\"info\"," +
		"\"connection\":456,\"protocol\":\"smtp\",\"command\":\"DATA\"," +
		"\"message\":\"TestWithAll\"}\n")
}
