package markdown

import "strings"

// PlainText reduces md to plain text: block markers are stripped, code fences
// and images are dropped, links keep their label, and emphasis markers are
// removed. Lines join with single spaces, so the result is suitable as input
// for excerpting.
func PlainText(md string) string {
	var parts []string
	inCode := false
	for _, raw := range strings.Split(md, "\n") {
		line := strings.TrimRight(raw, "\r")
		if strings.HasPrefix(line, "```") {
			inCode = !inCode
			continue
		}
		if inCode {
			continue
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "---") {
			continue
		}
		// Block markers
		switch {
		case strings.HasPrefix(line, "### "):
			line = line[4:]
		case strings.HasPrefix(line, "## "):
			line = line[3:]
		case strings.HasPrefix(line, "# "):
			line = line[2:]
		case strings.HasPrefix(line, "- "):
			line = line[2:]
		case strings.HasPrefix(line, "> "):
			line = line[2:]
		default:
			line = reOrderedList.ReplaceAllString(line, "")
		}
		line = stripInline(line)
		if line = strings.TrimSpace(line); line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, " ")
}

// stripInline removes inline markup: images are dropped entirely, links keep
// their label, and emphasis/code markers disappear.
func stripInline(s string) string {
	s = reImg.ReplaceAllString(s, "")
	s = reLink.ReplaceAllString(s, "$1")
	s = reInlineCode.ReplaceAllString(s, "$1")
	s = reBold.ReplaceAllString(s, "$1")
	s = reBoldUnderscore.ReplaceAllString(s, "$1")
	s = reItalic.ReplaceAllString(s, "$1")
	s = reItalicUnderscore.ReplaceAllString(s, "$1")
	return s
}
