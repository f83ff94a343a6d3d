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

	"github.com/rs/zerolog"
)

type fieldConnection struct{}
type fieldProtocol struct{}
type fieldCommand struct{}
type fieldAccount struct{}

// WithConnection adds the connection identifier to the context.
func WithConnection(ctx context.Context, connection int64) context.Context {
	return context.WithValue(ctx, fieldConnection{}, connection)
}

// WithProtocol adds the protocol name to the context.
func WithProtocol(ctx context.Context, protocol string) context.Context {
	return context.WithValue(ctx, fieldProtocol{}, protocol)
}

// WithCommand adds the command name to the context.
func WithCommand(ctx context.Context, command string) context.Context {
	return context.WithValue(ctx, fieldCommand{}, command)
}

// WithAccount adds the account name to the context.
func WithAccount(ctx context.Context, account string) context.Context {
	return context.WithValue(ctx, fieldAccount{}, account)
}

// appendContextFields adds defined fields in the context to the log event.
func appendContextFields(ctx context.Context, event *zerolog.Event) *zerolog.Event {
	if connection, ok := ctx.Value(fieldConnection{}).(int64); ok {
		event.Int64("connection", connection)
	}

	if protocol, ok := ctx.Value(fieldProtocol{}).(string); ok {
		event.Str("protocol", protocol)
	}

	if command, ok := ctx.Value(fieldCommand{}).(string); ok {
		event.Str("command", command)
	}

	if account, ok := ctx.Value(fieldAccount{}).(string); ok {
		event.Str("account", account)
	}

	return event
}
