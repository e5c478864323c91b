package ignore

import (
	"bufio"
	"bytes"
	"os"
	"strings"

	"github.com/arthur-debert/customs/pkg/errors"
)

// DefaultFileName is the flat ignore file looked up at the project root
const DefaultFileName = ".customsignore"

// LoadFlatFile reads an ignore list. A missing file yields an empty list and
// no error; callers check for existence when that matters.
func LoadFlatFile(path string) (Prefixes, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Prefixes{}, nil
		}
		return nil, errors.Wrapf(err, errors.ErrIO, "failed to read ignore file %s", path).
			WithDetail(errors.DetailPath, path)
	}
	return ParseFlatFile(data), nil
}

// ParseFlatFile parses ignore list content: one prefix per line, blank lines
// and lines starting with "#" skipped, "./" and a leading "/" stripped.
// A trailing "/" is kept so "build/" only names the build directory.
func ParseFlatFile(data []byte) Prefixes {
	prefixes := Prefixes{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		dir := strings.HasSuffix(strings.ReplaceAll(line, "\\", "/"), "/")
		line = Clean(line)
		if line == "" {
			continue
		}
		if dir {
			line += "/"
		}
		prefixes = append(prefixes, line)
	}
	return prefixes
}
