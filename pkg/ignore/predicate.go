package ignore

import (
	"path"
	"strings"
)

// Predicate reports whether a path relative to the project root must be
// excluded. relPath always uses forward slashes and never starts with "./".
type Predicate interface {
	Ignored(relPath string, isDir bool) bool
}

// Func adapts a function to Predicate
type Func func(relPath string, isDir bool) bool

// Ignored implements Predicate
func (f Func) Ignored(relPath string, isDir bool) bool { return f(relPath, isDir) }

// Nop ignores nothing
type Nop struct{}

// Ignored implements Predicate
func (Nop) Ignored(string, bool) bool { return false }

// Components excludes any path with a segment equal to one of its entries,
// at any depth
type Components []string

// Ignored implements Predicate
func (c Components) Ignored(relPath string, _ bool) bool {
	for _, segment := range strings.Split(relPath, "/") {
		for _, name := range c {
			if segment == name {
				return true
			}
		}
	}
	return false
}

// Prefixes excludes every path starting with one of its entries.
// This is plain string prefix matching, see the package documentation.
// Directories are matched with a trailing "/" so an entry like "build/"
// covers the directory itself.
type Prefixes []string

// Ignored implements Predicate
func (p Prefixes) Ignored(relPath string, isDir bool) bool {
	if isDir {
		relPath += "/"
	}
	for _, prefix := range p {
		if strings.HasPrefix(relPath, prefix) {
			return true
		}
	}
	return false
}

// Any excludes a path when any of preds does. Nil predicates are dropped.
func Any(preds ...Predicate) Predicate {
	var kept anyOf
	for _, p := range preds {
		if p == nil {
			continue
		}
		if _, isNop := p.(Nop); isNop {
			continue
		}
		kept = append(kept, p)
	}
	switch len(kept) {
	case 0:
		return Nop{}
	case 1:
		return kept[0]
	}
	return kept
}

type anyOf []Predicate

func (a anyOf) Ignored(relPath string, isDir bool) bool {
	for _, p := range a {
		if p.Ignored(relPath, isDir) {
			return true
		}
	}
	return false
}

// Clean normalizes a relative path the way predicates expect it
func Clean(relPath string) string {
	relPath = strings.ReplaceAll(relPath, "\\", "/")
	relPath = path.Clean(relPath)
	relPath = strings.TrimPrefix(relPath, "./")
	relPath = strings.TrimPrefix(relPath, "/")
	if relPath == "." {
		return ""
	}
	return relPath
}
