// Package syllabus turns an uploaded syllabus document into titled units.
package syllabus

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MinContentLength is the shortest unit content kept by Segment. Shorter
// blocks are treated as noise.
const MinContentLength = 20

// Unit is one topic section of a syllabus.
type Unit struct {
	Title   string
	Content string
}

var (
	blankRunRe = regexp.MustCompile(`\n(?:[ \t]*\n)+`)

	// headingRe matches "Unit 3", "UNIT - 2", "module:4" at the start of a
	// line. Sub-numbers such as "Unit 1.2" match as "Unit 1".
	headingRe = regexp.MustCompile(`(?im)^(unit|module)[ \t]*[-:]?[ \t]*(\d+)\b`)

	paragraphRe = regexp.MustCompile(`\n\n+`)
)

// Segment splits raw syllabus text into units in document order.
//
// Every "Unit N" or "Module N" heading starts a block that runs up to the
// next heading. The heading line is dropped from the block content. Text with
// no headings is split into blank-line separated paragraphs instead, numbered
// "Unit 1", "Unit 2" and so on. Units whose content is shorter than
// MinContentLength are dropped.
func Segment(raw string) []Unit {
	text := normalize(raw)
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var units []Unit
	if matches := headingRe.FindAllStringSubmatchIndex(text, -1); len(matches) > 0 {
		units = segmentByHeadings(text, matches)
	} else {
		units = segmentByParagraphs(text)
	}

	kept := units[:0]
	for _, u := range units {
		if utf8.RuneCountInString(u.Content) >= MinContentLength {
			kept = append(kept, u)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return kept
}

// normalize unifies line endings and collapses runs of blank lines into a
// single blank line.
func normalize(raw string) string {
	text := strings.ReplaceAll(raw, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return blankRunRe.ReplaceAllString(text, "\n\n")
}

func segmentByHeadings(text string, matches [][]int) []Unit {
	caser := cases.Title(language.English)
	units := make([]Unit, 0, len(matches))
	for i, m := range matches {
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}

		word := text[m[2]:m[3]]
		number := text[m[4]:m[5]]

		// Drop the rest of the heading line along with the marker.
		body := text[m[1]:end]
		if nl := strings.IndexByte(body, '\n'); nl >= 0 {
			body = body[nl+1:]
		} else {
			body = ""
		}

		units = append(units, Unit{
			Title:   fmt.Sprintf("%s %s", caser.String(word), number),
			Content: strings.TrimSpace(body),
		})
	}
	return units
}

func segmentByParagraphs(text string) []Unit {
	trimmed := strings.TrimSpace(text)
	chunks := paragraphRe.Split(trimmed, -1)
	if len(chunks) <= 1 {
		return []Unit{{Title: "Unit 1", Content: trimmed}}
	}

	units := make([]Unit, 0, len(chunks))
	for i, c := range chunks {
		units = append(units, Unit{
			Title:   fmt.Sprintf("Unit %d", i+1),
			Content: strings.TrimSpace(c),
		})
	}
	return units
}
