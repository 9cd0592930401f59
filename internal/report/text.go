package report

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"fortio.org/safecast"

	"diagsynth/internal/diag"
	"diagsynth/internal/reason"
)

// ordinal renders 1 as "1st", 2 as "2nd" and so on.
func ordinal(n int) string {
	u, err := safecast.Conv[uint](n)
	if err != nil {
		return strconv.Itoa(n)
	}
	suffix := "th"
	switch u % 100 {
	case 11, 12, 13:
	default:
		switch u % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.FormatUint(uint64(u), 10) + suffix
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return strconv.Itoa(n) + " " + word + "s"
}

func desc(r reason.Reason) string {
	return r.Desc.String()
}

// ref is the styled text naming r and pointing at it.
func ref(r reason.Reason) diag.Text {
	text, code := r.Desc.Display()
	return diag.RefText(text, code, r.Loc)
}

func text(s string) diag.Text {
	return diag.Plain(s)
}

func code(s string) diag.Text {
	return diag.CodeText(s)
}

// capitalize upper-cases the first letter of a leading plain piece.
func capitalize(parts []diag.Text) []diag.Text {
	if len(parts) == 0 || parts[0].Code {
		return parts
	}
	r, size := utf8.DecodeRuneInString(parts[0].Value)
	if r == utf8.RuneError || unicode.IsUpper(r) {
		return parts
	}
	out := append([]diag.Text(nil), parts...)
	out[0].Value = string(unicode.ToUpper(r)) + parts[0].Value[size:]
	return out
}

// joinFrames renders "A", "A and then B", "A; B and then C".
func joinFrames(frames [][]diag.Text) []diag.Text {
	var out []diag.Text
	for i, f := range frames {
		switch {
		case i == 0:
		case i == len(frames)-1:
			out = append(out, text(" and then "))
		default:
			out = append(out, text("; "))
		}
		out = append(out, f...)
	}
	return out
}

// classicMessage flattens primary infos: lines joined by spaces, infos by ". ".
func classicMessage(infos []diag.Info) string {
	parts := make([]string, 0, len(infos))
	for _, info := range infos {
		if len(info.Lines) == 0 {
			continue
		}
		parts = append(parts, strings.Join(info.Lines, " "))
	}
	return strings.Join(parts, ". ")
}

// refAt is label text pointing at r.
func refAt(label string, r reason.Reason) diag.Text {
	return diag.RefText(label, false, r.Loc)
}
