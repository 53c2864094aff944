// Package mandoc adapts the external formatting engine. It runs the mandoc
// formatter (falling back to man) on a page source file and replays the
// rendered character stream through the document bridge callbacks.
package mandoc

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"manview/man/catalog"
	"manview/man/doc"
)

// formatWidth is the column the formatter wraps at, matching the traditional
// 78-column page body.
const formatWidth = 78

// DetectMacroset decides which terminal style the source selects: mdoc for
// .Dd/.Dt documents, man for .TH. Mdoc wins when both appear.
func DetectMacroset(src []byte) doc.Macroset {
	for _, line := range bytes.Split(src, []byte("\n")) {
		switch {
		case bytes.HasPrefix(line, []byte(".Dd")), bytes.HasPrefix(line, []byte(".Dt")):
			return doc.Mdoc
		case bytes.HasPrefix(line, []byte(".TH")):
			return doc.Man
		}
	}
	return doc.Man
}

// readSource returns the page source, decompressing a .gz file transparently.
func readSource(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.EqualFold(filepath.Ext(path), ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		r = gz
	}
	return io.ReadAll(r)
}

// format runs the external formatter and returns its rendered output, with
// the overstrike emphasis encoding intact. dir becomes the working directory
// so relative inclusion directives resolve against the man tree.
func format(path, dir string) ([]byte, error) {
	cmd := exec.Command("mandoc", "-Tutf8", fmt.Sprintf("-Owidth=%d", formatWidth), path)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err == nil {
		return out, nil
	}

	// mandoc missing or refusing the file: let man format it instead
	cmd = exec.Command("man", "-l", path)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		fmt.Sprintf("MANWIDTH=%d", formatWidth),
		"MAN_KEEP_FORMATTING=1",
		"GROFF_NO_SGR=1",
		"MANPAGER=cat",
		"PAGER=cat",
	)
	out, manErr := cmd.Output()
	if manErr != nil {
		return nil, fmt.Errorf("formatting %s: %w", path, err)
	}
	return out, nil
}

// Open formats the page at path and returns the populated document. The
// returned document has been trimmed but not yet scanned for links; the
// caller runs doc.FindLinks with its catalog. On error no document is
// produced and the caller's navigation state is untouched.
func Open(path, dir string) (*doc.Document, error) {
	src, err := readSource(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	out, err := format(path, dir)
	if err != nil {
		return nil, err
	}

	d := doc.New()
	d.Path = path
	d.Dir = dir
	if name, section, ok := catalog.PageNameAndSection(path); ok {
		d.Name = name
		d.Section = section
	}

	session := doc.NewSession(d, DetectMacroset(src))
	Replay(session, out)

	d.TrimTrailingBlank()
	return d, nil
}

// Replay feeds rendered formatter output through the callback protocol:
// every newline is an endline event, every other rune a letter event.
func Replay(ev doc.Events, out []byte) {
	ev.Begin()
	r := bufio.NewReader(bytes.NewReader(out))
	for {
		c, _, err := r.ReadRune()
		if err != nil {
			break
		}
		if c == '\n' {
			ev.EndLine()
			continue
		}
		ev.Letter(c)
	}
	ev.End()
}
