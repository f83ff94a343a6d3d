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
	"bufio"
	"context"
	"io"
	"net"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kuvert/kuvert/internal/textproto"
)

// clientConn scripts one side of a protocol conversation. The protocol
// under test runs in its own goroutine on the other end of a pipe, exactly
// like it would behind a real listener.
type clientConn struct {
	t    *testing.T
	conn net.Conn
	r    *bufio.Reader
}

func startSession(t *testing.T, proto textproto.Protocol) *clientConn {
	server, client := net.Pipe()

	go func() {
		defer server.Close()
		proto.Handle(textproto.NewConn(server, context.Background()))
	}()

	t.Cleanup(func() { client.Close() })

	return &clientConn{
		t:    t,
		conn: client,
		r:    bufio.NewReader(client),
	}
}

func (c *clientConn) sendLine(line string) {
	_, err := c.conn.Write([]byte(line + "\r\n"))
	require.NoError(c.t, err)
}

func (c *clientConn) readLine() string {
	line, err := c.r.ReadString('\n')
	require.NoError(c.t, err)

	return strings.TrimSuffix(line, "\r\n")
}

func (c *clientConn) expect(lines ...string) {
	for _, line := range lines {
		require.Equal(c.t, line, c.readLine())
	}
}

func (c *clientConn) expectClosed() {
	_, err := c.r.ReadString('\n')
	require.Equal(c.t, io.EOF, err)
}
