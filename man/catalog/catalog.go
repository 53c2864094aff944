// Package catalog builds and queries the catalog of installed man pages: a
// key→location map under keys of the form "name(section)", a sorted name
// list with a lowercased shadow for case-insensitive matching, and the ranked
// substring search over it.
package catalog

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultPaths are searched when `manpath` is unavailable.
var DefaultPaths = []string{
	"/usr/share/man",
	"/usr/X11R6/man",
	"/usr/local/man",
}

// Sections is the section scan order, most commonly wanted first.
var Sections = []string{"1", "8", "6", "2", "3", "5", "7", "4", "9", "3p"}

// Entry locates one catalogued page. Dir is the man tree the page was found
// in; documents are formatted from that directory so relative inclusion
// directives resolve.
type Entry struct {
	Path string
	Dir  string
}

// Catalog is the immutable name→location database built once at startup.
type Catalog struct {
	entries map[string]Entry
	names   []string // sorted, original case
	lower   []string // lowercased shadow, parallel to names
}

// ManPaths returns the man trees to scan: the output of `manpath --quiet`
// split on ':', or DefaultPaths when manpath is missing or silent.
func ManPaths() []string {
	out, err := exec.Command("manpath", "--quiet").Output()
	if err != nil {
		return DefaultPaths
	}
	var paths []string
	for _, p := range strings.FieldsFunc(string(bytes.TrimSpace(out)), func(r rune) bool {
		return r == ':' || r == '\n'
	}) {
		if p != "" {
			paths = append(paths, p)
		}
	}
	if len(paths) == 0 {
		return DefaultPaths
	}
	return paths
}

// Build scans the given man trees and returns the catalog. Duplicate keys are
// resolved last-scanned-wins.
func Build(paths []string) *Catalog {
	c := &Catalog{entries: make(map[string]Entry)}

	for _, path := range paths {
		for _, section := range Sections {
			files, err := filepath.Glob(filepath.Join(path, "man"+section, "*"))
			if err != nil {
				continue
			}
			for _, file := range files {
				name, sec, ok := PageNameAndSection(file)
				if !ok {
					continue
				}
				key := name + "(" + sec + ")"
				if _, exists := c.entries[key]; !exists {
					c.names = append(c.names, key)
				}
				c.entries[key] = Entry{Path: file, Dir: path}
			}
		}
	}

	sort.Strings(c.names)
	c.lower = make([]string, len(c.names))
	for i, n := range c.names {
		c.lower[i] = strings.ToLower(n)
	}
	return c
}

// Len returns the number of catalogued keys.
func (c *Catalog) Len() int { return len(c.names) }

// Name returns the i-th key in sorted order.
func (c *Catalog) Name(i int) string { return c.names[i] }

// Get looks up an exact key like "printf(3)".
func (c *Catalog) Get(key string) (Entry, bool) {
	e, ok := c.entries[key]
	return e, ok
}

// Resolve is Get in the shape the link resolver consumes.
func (c *Catalog) Resolve(key string) (path, dir string, ok bool) {
	e, ok := c.Get(key)
	return e.Path, e.Dir, ok
}

// PageNameAndSection derives the page name and section from a file path:
// the extension after the last dot of the base name, with a .gz suffix
// stripped first. "/usr/share/man/man1/ls.1.gz" yields ("ls", "1").
func PageNameAndSection(path string) (name, section string, ok bool) {
	base := filepath.Base(path)
	if strings.EqualFold(filepath.Ext(base), ".gz") {
		base = base[:len(base)-3]
	}
	dot := strings.LastIndexByte(base, '.')
	if dot <= 0 || dot == len(base)-1 {
		return "", "", false
	}
	return base[:dot], base[dot+1:], true
}

// Lookup resolves a page by name, and optionally section, directly against
// the filesystem. It is used at startup before the viewer is on screen, when
// the argument may name a page that glob scanning would find anyway.
func Lookup(paths []string, section, name string) (path, dir string, err error) {
	if section != "" {
		for _, p := range paths {
			if file, ok := fsLookup(p, section, name); ok {
				return file, p, nil
			}
		}
		return "", "", fmt.Errorf("no entry for %s in section %s of the manual", name, section)
	}

	for _, p := range paths {
		for _, sec := range Sections {
			if file, ok := fsLookup(p, sec, name); ok {
				return file, p, nil
			}
		}
	}
	return "", "", fmt.Errorf("no entry for %s in the manual", name)
}

// fsLookup checks the conventional locations of one page inside one man tree,
// then falls back to treating "name.section" as a literal path.
func fsLookup(path, sec, name string) (string, bool) {
	file := filepath.Join(path, "man"+sec, name+"."+sec)
	if _, err := os.Stat(file); err == nil {
		return file, true
	}

	file = filepath.Join(path, "cat"+sec, name+".0")
	if _, err := os.Stat(file); err == nil {
		return file, true
	}

	pattern := filepath.Join(path, "man"+sec, name+".[01-9]*")
	if globbed, err := filepath.Glob(pattern); err == nil && len(globbed) > 0 {
		if _, err := os.Stat(globbed[0]); err == nil {
			return globbed[0], true
		}
	}

	file = name + "." + sec
	if _, err := os.Stat(file); err == nil {
		return file, true
	}

	return "", false
}
