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

package accounts

import (
	"sort"

	"github.com/google/wire"
	"github.com/spf13/viper"

	"github.com/kuvert/kuvert/internal/log"
)

// WireSet is the provider set for dependency injection.
var WireSet = wire.NewSet(NewDirectory)

// Account is an identity known to the server. The password is an opaque
// string compared verbatim during authentication.
type Account struct {
	Name     string
	Password string
}

// Directory is a read-only view of all configured accounts.
type Directory interface {
	// Lookup returns the account for a name, if one is configured.
	Lookup(name string) (Account, bool)

	// Names returns all account names in ascending order.
	Names() []string
}

// NewDirectory creates a directory from the viper configuration.
//
// `accounts` is a map of account name to plaintext password. The map is read
// once at startup and is immutable afterwards. Viper folds map keys to lower
// case, so account names are effectively matched case-insensitively on the
// configuration side.
func NewDirectory() Directory {
	entries := viper.GetStringMapString("accounts")

	if len(entries) == 0 {
		log.Warn().Msg("no accounts configured")
	}

	return &directory{entries: entries}
}

type directory struct {
	entries map[string]string
}

func (d *directory) Lookup(name string) (Account, bool) {
	password, ok := d.entries[name]
	if !ok {
		return Account{}, false
	}

	return Account{Name: name, Password: password}, true
}

func (d *directory) Names() []string {
	names := make([]string, 0, len(d.entries))
	for name := range d.entries {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}
