// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package copyright

import (
	"bufio"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// field is a tag and its value lines in a paragraph.
type field struct {
	tag   string
	lines []string
}

type paragraph []field

// reader reads paragraphs of a Debian copyright file.
type reader struct {
	r      *bufio.Reader
	lineno int
	err    error
}

func newReader(r io.Reader) *reader {
	return &reader{r: bufio.NewReader(r)}
}

// next returns the next line that is not a comment line, without
// line terminator. Lines may be of any length.
func (r *reader) next() (string, bool) {
	for r.err == nil {
		line, err := r.r.ReadString('\n')
		if err != nil {
			r.err = err
			if line == "" {
				break
			}
		}
		r.lineno++
		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")
		if strings.HasPrefix(line, "#") {
			continue
		}
		return line, true
	}
	return "", false
}

// Err returns the read error other than io.EOF.
func (r *reader) Err() error {
	if r.err == io.EOF {
		return nil
	}
	return r.err
}

func isContinuation(line string) bool {
	return line[0] == ' ' || line[0] == '\t'
}

// paragraph returns the next paragraph.
// It returns io.EOF when no paragraph remains.
func (r *reader) paragraph() (paragraph, error) {
	var p paragraph
	started := false
	for {
		line, ok := r.next()
		if !ok {
			if err := r.Err(); err != nil {
				return nil, err
			}
			if !started {
				return nil, io.EOF
			}
			return p, nil
		}
		if strings.TrimSpace(line) == "" {
			if !started {
				continue
			}
			return p, nil
		}
		if isContinuation(line) {
			started = true
			if len(p) == 0 {
				log.Debugf("copyright:%d: continuation line without tag ignored", r.lineno)
				continue
			}
			last := &p[len(p)-1]
			if last.tag != "" {
				last.lines = append(last.lines, strings.TrimSpace(line))
			}
			continue
		}
		tag, value, ok := strings.Cut(line, ":")
		if !ok {
			// a line without tag ends the paragraph as a blank line does.
			log.Debugf("copyright:%d: line without tag ends paragraph: %q", r.lineno, line)
			if !started {
				continue
			}
			return p, nil
		}
		started = true
		p = append(p, field{
			tag:   strings.TrimSpace(tag),
			lines: []string{strings.TrimSpace(value)},
		})
	}
}
