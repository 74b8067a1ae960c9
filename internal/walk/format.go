package walkdir

import (
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"
)

// TypeName returns a short name for the type bits of mode.
func TypeName(mode fs.FileMode) string {
	switch {
	case mode.IsDir():
		return "dir"
	case mode&fs.ModeSymlink != 0:
		return "symlink"
	case mode.IsRegular():
		return "file"
	case mode&fs.ModeNamedPipe != 0:
		return "fifo"
	case mode&fs.ModeSocket != 0:
		return "socket"
	case mode&fs.ModeDevice != 0:
		return "device"
	default:
		return "other"
	}
}

// FormatEntry replaces placeholders in a template with values from the entry.
//
// Supported placeholders are {} (path), {base}, {dir}, {depth} and {type},
// plus quoted forms such as {""} and {"base"}. {type} is resolved with a
// fresh lstat and renders as "unknown" when that fails.
func FormatEntry(template string, e Entry) string {
	str := template

	if strings.Contains(str, "{type}") || strings.Contains(str, `{"type"}`) {
		typ := "unknown"
		if mode, err := e.FileType(); err == nil {
			typ = TypeName(mode)
		}
		str = strings.ReplaceAll(str, "{type}", typ)
		str = strings.ReplaceAll(str, `{"type"}`, strconv.Quote(typ))
	}

	depth := strconv.Itoa(e.Depth())
	dir := filepath.Dir(e.Path())

	str = strings.ReplaceAll(str, `{""}`, strconv.Quote(e.Path()))
	str = strings.ReplaceAll(str, `{"base"}`, strconv.Quote(e.Name()))
	str = strings.ReplaceAll(str, `{"dir"}`, strconv.Quote(dir))
	str = strings.ReplaceAll(str, `{"depth"}`, strconv.Quote(depth))

	str = strings.ReplaceAll(str, "{}", e.Path())
	str = strings.ReplaceAll(str, "{base}", e.Name())
	str = strings.ReplaceAll(str, "{dir}", dir)
	str = strings.ReplaceAll(str, "{depth}", depth)

	return str
}
