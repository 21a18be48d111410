// Package cli renders logmap results and progress for the terminal.
package cli
