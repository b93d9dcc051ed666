// Package terminal provides direct ANSI terminal control for a full-screen
// viewer: raw mode, the alternate screen, SGR mouse reporting, decoded key
// and mouse input, and SIGWINCH resize events delivered through the same
// queue as input.
//
// Output is frame based: BeginFrame clears the screen, WriteAt places
// pre-rendered rows, EndFrame flushes. Styles are encoded by AppendStyle in
// true color or the nearest xterm-256 palette entry.
//
// The package bypasses terminfo and emits xterm-compatible sequences.
package terminal
