// Copyright (c) 2021-2026 Rustam Gilyazov and Contributors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package osext contains operating system helpers.
package osext

import (
	"os"

	"golang.org/x/term"
)

// CanPrompt returns true if the user can be asked a question: STDIN and
// STDERR are both terminals.  STDOUT is not checked, as it may carry the MCP
// stdio transport or be redirected to a file.
func CanPrompt() bool {
	return isTerminal(os.Stdin) && isTerminal(os.Stderr) && os.Getenv("TERM") != "dumb"
}

func isTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}
