package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type cell struct {
	r       rune
	width   int
	isSpace bool
}

// Wrap breaks text into lines of at most width terminal cells, preferring to
// break at spaces. Existing line breaks are kept.
func Wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	paragraphs := strings.Split(text, "\n")
	for i, p := range paragraphs {
		paragraphs[i] = wrapCells(toCells(p), width)
	}
	return strings.Join(paragraphs, "\n")
}

func toCells(text string) []cell {
	out := make([]cell, 0, len(text))
	for _, r := range text {
		out = append(out, cell{r: r, width: runewidth.RuneWidth(r), isSpace: r == ' '})
	}
	return out
}

func renderCells(cells []cell) string {
	var b strings.Builder
	for _, c := range cells {
		b.WriteRune(c.r)
	}
	return b.String()
}

func wrapCells(cells []cell, width int) string {
	var out strings.Builder
	line := make([]cell, 0, len(cells))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(cells); {
		item := cells[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if item.isSpace {
				// Drop the space that would start the next line.
				out.WriteString(renderCells(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
				i++
				continue
			}
			if lastSpaceIdx >= 0 {
				out.WriteString(renderCells(line[:lastSpaceIdx]))
				out.WriteRune('\n')
				line = append([]cell{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				out.WriteString(renderCells(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderCells(line))
	return out.String()
}

func lineWidthOf(line []cell) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []cell) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
