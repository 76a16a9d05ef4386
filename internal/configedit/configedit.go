// Package configedit applies single-key updates to rimeup.toml in place.
//
// Edits are line-based rather than a decode/re-encode round trip: rewriting
// through a TOML tree would drop the user's comments and reorder keys. The
// go-toml library is used for syntax validation only.
package configedit

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml"

	"github.com/cranekit/rimeup/internal/config"
	"github.com/cranekit/rimeup/internal/fsutil"
	"github.com/cranekit/rimeup/internal/messages"
)

type keyPath struct {
	section string
	key     string
}

// settable maps the dotted keys `rimeup config set` accepts to their place
// in the file. Only scalar string settings are editable this way; the list
// settings under [deps] need a text editor.
var settable = map[string]keyPath{
	"archive.path":          {section: "archive", key: "path"},
	"archive.scratch_dir":   {section: "archive", key: "scratch_dir"},
	"install.target_dir":    {section: "install", key: "target_dir"},
	"install.backup_prefix": {section: "install", key: "backup_prefix"},
	"logging.dir":           {section: "logging", key: "dir"},
}

// SettableKeys returns the dotted keys Set accepts, sorted.
func SettableKeys() []string {
	keys := make([]string, 0, len(settable))
	for key := range settable {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// UnknownKeyError reports a dotted key outside the settable set.
type UnknownKeyError struct {
	Key string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf(messages.ConfigEditUnknownKeyFmt, e.Key, strings.Join(SettableKeys(), ", "))
}

// Set rewrites the file at path so dottedKey holds value. The updated
// content must still load as a valid configuration, otherwise the file is
// left untouched.
func Set(path, dottedKey, value string) error {
	kp, ok := settable[dottedKey]
	if !ok {
		return &UnknownKeyError{Key: dottedKey}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf(messages.ConfigEditReadFmt, path, err)
	}
	if _, err := toml.LoadBytes(data); err != nil {
		return fmt.Errorf(messages.ConfigEditSyntaxFmt, err)
	}
	updated := setInLines(string(data), kp.section, kp.key, strconv.Quote(value))
	if _, err := config.Parse([]byte(updated), path); err != nil {
		return fmt.Errorf(messages.ConfigEditInvalidResultFmt, err)
	}
	if err := fsutil.WriteFileAtomic(path, []byte(updated), 0o644); err != nil {
		return fmt.Errorf(messages.ConfigEditWriteFmt, path, err)
	}
	return nil
}

// setInLines replaces the key's line inside its section, inserting the line
// after the section header when the key is absent and appending a whole new
// section when even that is missing.
func setInLines(content, section, key, value string) string {
	lines := strings.Split(content, "\n")
	start, end := sectionBounds(lines, section)
	if start < 0 {
		return appendSection(lines, section, key, value)
	}
	for i := start + 1; i < end; i++ {
		parsed, ok := parseKeyLine(lines[i])
		if !ok || parsed.key != key || parsed.commented {
			continue
		}
		lines[i] = buildKeyLine(parsed.indent, key, value, parsed.inlineComment)
		return strings.Join(lines, "\n")
	}
	newLine := buildKeyLine("", key, value, "")
	lines = append(lines[:start+1], append([]string{newLine}, lines[start+1:]...)...)
	return strings.Join(lines, "\n")
}

// sectionBounds returns the header index of the section and the index one
// past its last line, or (-1, -1) when the section is absent. Array-of-table
// headers such as [[deps.managers]] terminate the preceding section.
func sectionBounds(lines []string, section string) (int, int) {
	start := -1
	for i, line := range lines {
		name, ok := parseHeader(line)
		if !ok {
			continue
		}
		if start >= 0 {
			return start, i
		}
		if name == section {
			start = i
		}
	}
	if start >= 0 {
		return start, len(lines)
	}
	return -1, -1
}

// parseHeader detects a table or array-of-table header line and extracts
// its name, ignoring any inline comment.
func parseHeader(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return "", false
	}
	if idx := commentIndex(trimmed); idx >= 0 {
		trimmed = strings.TrimSpace(trimmed[:idx])
	}
	if strings.HasPrefix(trimmed, "[[") && strings.HasSuffix(trimmed, "]]") {
		name := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(trimmed, "[["), "]]"))
		return name, name != ""
	}
	if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
		name := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(trimmed, "["), "]"))
		return name, name != ""
	}
	return "", false
}

type keyLine struct {
	indent        string
	key           string
	commented     bool
	inlineComment string
}

// parseKeyLine parses a key/value assignment line. Commented-out
// assignments are reported so callers can skip them.
func parseKeyLine(line string) (keyLine, bool) {
	trimmedLeft := strings.TrimLeft(line, " \t")
	parsed := keyLine{indent: line[:len(line)-len(trimmedLeft)]}
	rest := trimmedLeft
	if strings.HasPrefix(rest, "#") {
		parsed.commented = true
		rest = strings.TrimLeft(strings.TrimPrefix(rest, "#"), " \t")
	}
	eq := strings.Index(rest, "=")
	if eq < 0 {
		return keyLine{}, false
	}
	parsed.key = strings.TrimSpace(rest[:eq])
	if parsed.key == "" || strings.ContainsAny(parsed.key, "[]#\"'") {
		return keyLine{}, false
	}
	valuePart := rest[eq+1:]
	if idx := commentIndex(valuePart); idx >= 0 {
		parsed.inlineComment = strings.TrimSpace(valuePart[idx:])
	}
	return parsed, true
}

// commentIndex returns the index of the first # outside a quoted string,
// or -1 when the line has no comment.
func commentIndex(s string) int {
	inDouble := false
	inSingle := false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if inDouble {
			if ch == '\\' {
				i++
				continue
			}
			if ch == '"' {
				inDouble = false
			}
			continue
		}
		if inSingle {
			if ch == '\'' {
				inSingle = false
			}
			continue
		}
		switch ch {
		case '"':
			inDouble = true
		case '\'':
			inSingle = true
		case '#':
			return i
		}
	}
	return -1
}

func buildKeyLine(indent, key, value, inlineComment string) string {
	line := fmt.Sprintf("%s%s = %s", indent, key, value)
	if inlineComment != "" {
		line += " " + inlineComment
	}
	return line
}

// appendSection adds a new section with the single key at the end of the
// file, separated from existing content by one blank line.
func appendSection(lines []string, section, key, value string) string {
	out := make([]string, 0, len(lines)+3)
	out = append(out, lines...)
	for len(out) > 0 && strings.TrimSpace(out[len(out)-1]) == "" {
		out = out[:len(out)-1]
	}
	if len(out) > 0 {
		out = append(out, "")
	}
	out = append(out, "["+section+"]", buildKeyLine("", key, value, ""))
	return strings.Join(out, "\n") + "\n"
}
