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

package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/spf13/afero"

	"github.com/kuvert/kuvert/internal/crypto"
)

const (
	// messageExt is the filename extension of stored messages.
	messageExt = ".txt"
	// deletedFolder holds soft deleted messages within a mailbox.
	deletedFolder = "deleted"
)

// ErrNotFound is returned when a message file does not exist, for example
// because another session soft deleted it in the meantime.
var ErrNotFound = errors.New("storage: message not found")

// Store is the durable, directory backed message storage shared by all
// sessions. Messages are opaque byte blobs; one file per message, named by a
// random UUID. The filesystem is the only coordination point between
// connections: writes never collide because ids are random, and soft deletes
// are atomic renames.
type Store struct {
	fs    afero.Fs
	idGen crypto.IDGenerator
}

// NewStore creates a store on top of a filesystem rooted at the mailboxes
// folder.
func NewStore(fs afero.Fs, idGen crypto.IDGenerator) *Store {
	return &Store{fs: fs, idGen: idGen}
}

// Mailbox resolves an account name to its mailbox, creating the mailbox
// directory and its `deleted` sub-directory if necessary. Resolving is
// idempotent and safe to call concurrently for the same account.
//
// The directory name is the account name with `@` replaced by `_`. That is
// deliberately the whole sanitization rule.
func (s *Store) Mailbox(account string) (*Mailbox, error) {
	folder := strings.ReplaceAll(account, "@", "_")

	if err := s.fs.MkdirAll(path.Join(folder, deletedFolder), 0777); err != nil {
		return nil, err
	}

	return &Mailbox{store: s, folder: folder}, nil
}

// Entry describes one live message in a mailbox.
type Entry struct {
	// ID is the message id, the filename without extension.
	ID string
	// Size is the message size in bytes.
	Size int64
}

// Mailbox is a handle to one account's message directory.
type Mailbox struct {
	store  *Store
	folder string
}

// Folder returns the directory name of the mailbox relative to the mailboxes
// root.
func (m *Mailbox) Folder() string {
	return m.folder
}

// Entries lists all live messages directly in the mailbox directory. Soft
// deleted messages are not included.
func (m *Mailbox) Entries() ([]Entry, error) {
	infos, err := afero.ReadDir(m.store.fs, m.folder)
	if err != nil {
		return nil, err
	}

	var entries []Entry

	for _, info := range infos {
		if info.IsDir() || !strings.HasSuffix(info.Name(), messageExt) {
			continue
		}

		entries = append(entries, Entry{
			ID:   strings.TrimSuffix(info.Name(), messageExt),
			Size: info.Size(),
		})
	}

	return entries, nil
}

// Store writes all the data from r to a new message file and returns its id.
// A collision with an existing file is reported as an error instead of
// overwriting, since a repeating UUID hints at a broken random source.
func (m *Mailbox) Store(r io.Reader) (string, error) {
	id, err := m.store.idGen.GenerateID()
	if err != nil {
		return "", err
	}

	filename := path.Join(m.folder, id+messageExt)

	if ok, err := afero.Exists(m.store.fs, filename); err != nil {
		return "", err
	} else if ok {
		return "", fmt.Errorf("storage: message id collision: %q", id)
	}

	f, err := m.store.fs.Create(filename)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		m.store.fs.Remove(filename)

		return "", err
	}

	return id, f.Close()
}

// SoftDelete moves a message file into the `deleted` sub-directory, keeping
// its filename. The rename is atomic, so a concurrent listing sees the
// message either fully present or fully gone.
func (m *Mailbox) SoftDelete(id string) error {
	var (
		oldname = path.Join(m.folder, id+messageExt)
		newname = path.Join(m.folder, deletedFolder, id+messageExt)
	)

	if err := m.store.fs.Rename(oldname, newname); err != nil {
		if isNotExist(err) {
			return ErrNotFound
		}

		return err
	}

	return nil
}

// Reader opens a live message for reading. The caller is responsible for
// closing the reader.
func (m *Mailbox) Reader(id string) (io.ReadCloser, error) {
	f, err := m.store.fs.Open(path.Join(m.folder, id+messageExt))
	if err != nil {
		if isNotExist(err) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	return f, nil
}

func isNotExist(err error) bool {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return os.IsNotExist(pathErr)
	}

	return os.IsNotExist(err)
}
