// embed.go
//
// Vehicle catalogue and back-office API for TSE Automobiles
// Copyright (c) 2026 TSE Automobiles SARL
//
// This file is part of tse-catalogue-server.
// tse-catalogue-server is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// tse-catalogue-server is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with tse-catalogue-server.
// If not, see <https://www.gnu.org/licenses/>.

package data

import (
	_ "embed"
)

//go:embed initdb/mariadb/001-ddl-tables.sql
var InitdbMariaDBTables string

//go:embed model_defaults.json
var ModelDefaults []byte
