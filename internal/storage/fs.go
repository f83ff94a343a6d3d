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
	"os"

	"github.com/google/wire"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

func init() {
	viper.SetDefault("storage.mailboxes.foldername", "data/mailboxes")
}

// WireSet is the provider set for dependency injection.
var WireSet = wire.NewSet(NewFilesystem, NewStore)

// NewFilesystem creates the mailbox filesystem using configuration from viper.
//
// `storage.mailboxes.foldername` is the root folder holding one directory per
// mailbox. The folder is created if it does not exist.
func NewFilesystem() (afero.Fs, error) {
	folderName := viper.GetString("storage.mailboxes.foldername")

	if err := os.MkdirAll(folderName, 0777); err != nil {
		return nil, err
	}

	return afero.NewBasePathFs(afero.NewOsFs(), folderName), nil
}
