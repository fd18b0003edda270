// Package normalize strips everything from a schema document that is not a declaration:
// descriptions, comments, directive declarations and directive invocations.
//
// Stripped text is replaced by spaces while line terminators are kept, so every token left
// in the output sits at the same line and column as in the input.
package normalize

// Normalize never fails. An unterminated block string leaves the remainder of the text
// untouched; an unterminated single-line string only leaves the rest of its own line.
func Normalize(text string) string {
	src := []rune(text)
	out := stripDescriptionsAndComments(src)
	out = stripDirectiveDeclarations(out)
	out = stripDirectiveInvocations(out)
	return string(out)
}

func stripDescriptionsAndComments(src []rune) []rune {
	out := append([]rune(nil), src...)
	for i := 0; i < len(src); {
		switch {
		case src[i] == '#':
			j := lineEnd(src, i)
			blank(out, i, j)
			i = j
		case hasPrefix(src, i, `"""`):
			end := blockStringEnd(src, i+3)
			if end < 0 {
				return out
			}
			blank(out, i, end)
			i = end
		case src[i] == '"':
			end := stringEnd(src, i+1)
			if end < 0 {
				i = lineEnd(src, i)
				continue
			}
			blank(out, i, end)
			i = end
		default:
			i++
		}
	}
	return out
}

func lineEnd(src []rune, i int) int {
	for i < len(src) && src[i] != '\n' && src[i] != '\r' {
		i++
	}
	return i
}

// blockStringEnd returns the index just past the closing `"""`, or -1.
func blockStringEnd(src []rune, i int) int {
	for ; i < len(src); i++ {
		if src[i] == '\\' && hasPrefix(src, i+1, `"""`) {
			i += 3
			continue
		}
		if hasPrefix(src, i, `"""`) {
			return i + 3
		}
	}
	return -1
}

// stringEnd returns the index just past the closing quote of a single-line string, or -1
// if a line terminator or the end of input comes first.
func stringEnd(src []rune, i int) int {
	for ; i < len(src); i++ {
		switch src[i] {
		case '\\':
			i++
		case '"':
			return i + 1
		case '\n', '\r':
			return -1
		}
	}
	return -1
}

// stripDirectiveDeclarations removes `directive @name(args) repeatable on A | B`.
func stripDirectiveDeclarations(src []rune) []rune {
	for i := 0; i < len(src); i++ {
		if !isWordAt(src, i, "directive") {
			continue
		}
		if end := directiveDeclarationEnd(src, i+len("directive")); end > 0 {
			blank(src, i, end)
			i = end - 1
		}
	}
	return src
}

func directiveDeclarationEnd(src []rune, i int) int {
	i = skipSpace(src, i)
	if i >= len(src) || src[i] != '@' {
		return -1
	}
	i = skipSpace(src, i+1)
	if i = nameEnd(src, i); i < 0 {
		return -1
	}
	i = skipSpace(src, i)
	if i < len(src) && src[i] == '(' {
		if i = groupEnd(src, i, '(', ')'); i < 0 {
			return -1
		}
		i = skipSpace(src, i)
	}
	if isWordAt(src, i, "repeatable") {
		i = skipSpace(src, i+len("repeatable"))
	}
	if !isWordAt(src, i, "on") {
		return -1
	}
	i = skipSpace(src, i+len("on"))
	if i < len(src) && src[i] == '|' {
		i = skipSpace(src, i+1)
	}
	if i = nameEnd(src, i); i < 0 {
		return -1
	}
	for {
		j := skipSpace(src, i)
		if j >= len(src) || src[j] != '|' {
			return i
		}
		k := nameEnd(src, skipSpace(src, j+1))
		if k < 0 {
			return i
		}
		i = k
	}
}

// stripDirectiveInvocations removes `@name` and `@name(args)` wherever they appear.
func stripDirectiveInvocations(src []rune) []rune {
	for i := 0; i < len(src); i++ {
		if src[i] != '@' {
			continue
		}
		end := nameEnd(src, skipSpace(src, i+1))
		if end < 0 {
			continue
		}
		if j := skipSpace(src, end); j < len(src) && src[j] == '(' {
			if k := groupEnd(src, j, '(', ')'); k > 0 {
				end = k
			}
		}
		blank(src, i, end)
		i = end - 1
	}
	return src
}

// groupEnd returns the index just past the bracket matching src[i], or -1.
func groupEnd(src []rune, i int, open, close rune) int {
	depth := 0
	for ; i < len(src); i++ {
		switch src[i] {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return -1
}

// nameEnd returns the index just past the name starting at i, or -1 if none starts there.
func nameEnd(src []rune, i int) int {
	if i >= len(src) || !isNameStart(src[i]) {
		return -1
	}
	i++
	for i < len(src) && isNameRune(src[i]) {
		i++
	}
	return i
}

func skipSpace(src []rune, i int) int {
	for i < len(src) && isSpace(src[i]) {
		i++
	}
	return i
}

func isWordAt(src []rune, i int, word string) bool {
	if !hasPrefix(src, i, word) {
		return false
	}
	if i > 0 && isNameRune(src[i-1]) {
		return false
	}
	end := i + len([]rune(word))
	return end >= len(src) || !isNameRune(src[end])
}

func hasPrefix(src []rune, i int, prefix string) bool {
	for _, r := range prefix {
		if i >= len(src) || src[i] != r {
			return false
		}
		i++
	}
	return true
}

func blank(src []rune, from, to int) {
	for i := from; i < to; i++ {
		if src[i] != '\n' && src[i] != '\r' {
			src[i] = ' '
		}
	}
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == ','
}

func isNameStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isNameRune(r rune) bool {
	return isNameStart(r) || (r >= '0' && r <= '9')
}
