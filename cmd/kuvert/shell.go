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

package main

import (
	"errors"
	"io"

	"github.com/abiosoft/ishell"

	"github.com/kuvert/kuvert/internal/accounts"
	"github.com/kuvert/kuvert/internal/storage"
)

type shellCommand struct {
	Directory accounts.Directory
	Store     *storage.Store
}

func (s *shellCommand) run() error {
	shell := ishell.New()
	shell.Println("kuvert administration shell")

	s.setupShell(shell)
	shell.Run()

	return nil
}

func (s *shellCommand) setupShell(shell *ishell.Shell) {
	shell.AddCmd(composeShellCmd(
		ishell.Cmd{
			Name: "accounts",
			Help: "inspect accounts",
		},
		[]*ishell.Cmd{
			{
				Name: "list",
				Help: "list all configured accounts",
				Func: wrapShellFunc(s.accountsList),
			},
		},
	))

	shell.AddCmd(composeShellCmd(
		ishell.Cmd{
			Name: "mailbox",
			Help: "inspect mailboxes",
		},
		[]*ishell.Cmd{
			{
				Name: "list",
				Help: "list the messages of a mailbox",
				Func: wrapShellFunc(s.mailboxList),
			},
			{
				Name: "show",
				Help: "print a message",
				Func: wrapShellFunc(s.mailboxShow),
			},
		},
	))
}

func (s *shellCommand) accountsList(ctx *ishell.Context) error {
	if len(ctx.Args) != 0 {
		return errors.New("Usage: accounts list")
	}

	names := s.Directory.Names()

	ctx.Printf("\n(%d) Accounts:\n", len(names))
	for _, name := range names {
		ctx.Printf("\t%s\n", name)
	}
	ctx.Printf("\n")

	return nil
}

func (s *shellCommand) mailboxList(ctx *ishell.Context) error {
	if len(ctx.Args) != 1 {
		return errors.New("Usage: mailbox list [ACCOUNT]")
	}

	mailbox, err := s.Store.Mailbox(ctx.Args[0])
	if err != nil {
		return err
	}

	entries, err := mailbox.Entries()
	if err != nil {
		return err
	}

	ctx.Printf("\n(%d) Messages:\n", len(entries))
	for _, entry := range entries {
		ctx.Printf("\t%s (%d bytes)\n", entry.ID, entry.Size)
	}
	ctx.Printf("\n")

	return nil
}

func (s *shellCommand) mailboxShow(ctx *ishell.Context) error {
	if len(ctx.Args) != 2 {
		return errors.New("Usage: mailbox show [ACCOUNT] [ID]")
	}

	mailbox, err := s.Store.Mailbox(ctx.Args[0])
	if err != nil {
		return err
	}

	r, err := mailbox.Reader(ctx.Args[1])
	if err != nil {
		return err
	}

	defer r.Close()

	content, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	ctx.Printf("%s\n", content)
	return nil
}

func composeShellCmd(cmd ishell.Cmd, children []*ishell.Cmd) *ishell.Cmd {
	for _, child := range children {
		cmd.AddCmd(child)
	}

	return &cmd
}

func wrapShellFunc(fn func(*ishell.Context) error) func(*ishell.Context) {
	return func(ctx *ishell.Context) {
		if err := fn(ctx); err != nil {
			ctx.Printf("error: %v\n", err)
		}
	}
}
