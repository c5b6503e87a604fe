// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

//go:build !cgo

package eventdb

// go-sqlite3 compiled without cgo is a stub that cannot open databases and
// does not export Version, so there is no library version to report.
func sqliteVersion() string {
	return ""
}
