package doc

// maxLineBytes bounds the decode buffer used when scanning document lines;
// longer lines are truncated.
const maxLineBytes = 2048

// LinkTarget resolves an exact catalog key like "printf(3)" to the file and
// directory it was catalogued from.
type LinkTarget func(key string) (path, dir string, ok bool)

// FindLinks scans a finished document once for catalog cross-references and
// records their document-space rectangles on d.Links.
//
// Tokens are assembled between space/tab/comma/CR/LF separators. A token may
// not begin with '(', ')' or '|'; such characters reset the partial token. An
// opening parenthesis inside a token arms it; a closing parenthesis then
// completes it inclusively, and the completed token is looked up as an exact
// catalog key. After a completed token, scanning resumes past the parenthesis.
func FindLinks(d *Document, resolve LinkTarget, m Metrics) {
	d.Links = nil
	buf := make([]byte, maxLineBytes)

	for i := range d.Lines {
		n := d.PlainLine(i, buf)
		line := buf[:n]

		var word []byte
		openParen := false

		for pos := 0; pos < len(line); pos++ {
			c := line[pos]

			if c == ' ' || c == ',' || c == '\t' || c == '\n' || c == '\r' {
				word = word[:0]
				openParen = false
				continue
			}

			// can't start a word with a parenthesis
			if len(word) == 0 && (c == '(' || c == ')' || c == '|') {
				openParen = false
				continue
			}

			word = append(word, c)

			if c == '(' {
				openParen = true
			} else if c == ')' && openParen {
				if path, dir, ok := resolve(string(word)); ok {
					x := (pos + 1 - len(word)) * m.CharWidth
					y := i * m.LineAdvance
					d.Links = append(d.Links, Link{
						Rect: Rect{
							X:  x,
							Y:  y,
							X2: x + len(word)*m.CharWidth,
							Y2: y + m.LineHeight,
						},
						Path: path,
						Dir:  dir,
					})
				}
				word = word[:0]
				openParen = false
			}
		}
	}
}
