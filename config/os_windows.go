//go:build windows

package config

import (
	"os"
	"strings"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
	"golang.org/x/term"
)

// CleanFileName strips characters NTFS does not allow so a note title can
// serve as a file name.
func CleanFileName(in string) string {
	bad := `<>":/\|?*` + string(os.PathSeparator) + string(os.PathListSeparator)
	out := strings.Map(func(sym rune) rune {
		if sym == 0 || strings.ContainsRune(bad, sym) {
			return -1
		}
		return sym
	}, in)
	if len(out) == 0 {
		out = "_bad_file_name_"
	}
	return out
}

// EnableColorOutput reports whether the stream is an interactive console able
// to render ANSI colors, turning on VT100 sequence processing when it is.
// Windows before 10 has no such support.
func EnableColorOutput(stream *os.File) bool {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, `SOFTWARE\Microsoft\Windows NT\CurrentVersion`, registry.QUERY_VALUE)
	if err != nil {
		return false
	}
	defer k.Close()

	v, _, err := k.GetIntegerValue("CurrentMajorVersionNumber")
	if err != nil || v < 10 {
		return false
	}

	if !term.IsTerminal(int(stream.Fd())) {
		return false
	}

	var mode uint32
	if err := windows.GetConsoleMode(windows.Handle(stream.Fd()), &mode); err != nil {
		return false
	}
	const enableVirtualTerminalProcessing uint32 = 0x4
	if err := windows.SetConsoleMode(windows.Handle(stream.Fd()), mode|enableVirtualTerminalProcessing); err != nil {
		return false
	}
	return true
}
