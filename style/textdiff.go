package style

import "strings"

// TextDiffLine is one line of a unified text diff: a line present only
// on one side, carrying which side it came from.
type TextDiffLine struct {
	FromB bool // false: "<" (only in a), true: ">" (only in b)
	Text  string
}

// TextDiff produces a unified-diff-style line-based comparison of the
// plain text of a and b, via the smallest possible longest-common-
// subsequence alignment. Returns nil if the texts are equal.
func TextDiff(a, b StyledString) []TextDiffLine {
	if a.Text() == b.Text() {
		return nil
	}
	linesA := strings.Split(a.Text(), "\n")
	linesB := strings.Split(b.Text(), "\n")
	return diffLines(linesA, linesB)
}

// diffLines aligns two line slices with a classic O(n*m) LCS table and
// emits the minimal add/remove sequence in unified-diff order.
func diffLines(a, b []string) []TextDiffLine {
	n, m := len(a), len(b)
	lcs := make([][]int, n+1)
	for i := range lcs {
		lcs[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else if lcs[i+1][j] >= lcs[i][j+1] {
				lcs[i][j] = lcs[i+1][j]
			} else {
				lcs[i][j] = lcs[i][j+1]
			}
		}
	}

	var out []TextDiffLine
	i, j := 0, 0
	for i < n && j < m {
		switch {
		case a[i] == b[j]:
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			out = append(out, TextDiffLine{FromB: false, Text: a[i]})
			i++
		default:
			out = append(out, TextDiffLine{FromB: true, Text: b[j]})
			j++
		}
	}
	for ; i < n; i++ {
		out = append(out, TextDiffLine{FromB: false, Text: a[i]})
	}
	for ; j < m; j++ {
		out = append(out, TextDiffLine{FromB: true, Text: b[j]})
	}
	return out
}

// FormatTextDiff renders diff lines the way a terminal-friendly unified diff
// does: "< " prefix for a-only lines, "> " for b-only.
func FormatTextDiff(lines []TextDiffLine) string {
	var b strings.Builder
	for _, l := range lines {
		if l.FromB {
			b.WriteString("> ")
		} else {
			b.WriteString("< ")
		}
		b.WriteString(l.Text)
		b.WriteByte('\n')
	}
	return b.String()
}
