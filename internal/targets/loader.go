package targets

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/shinji-kodama/seqtree/internal/model"
)

// DefaultCommentPrefix marks lines that are ignored by the loader.
const DefaultCommentPrefix = "#"

// Options controls how a list file is interpreted.
type Options struct {
	// CommentPrefix marks lines to skip. Empty means DefaultCommentPrefix.
	CommentPrefix string

	// StrictRename rejects single-column rename lines with a
	// MalformedListError instead of applying the legacy convention.
	StrictRename bool
}

func (o Options) commentPrefix() string {
	if o.CommentPrefix == "" {
		return DefaultCommentPrefix
	}
	return o.CommentPrefix
}

// line is one significant (non-blank, non-comment) line of a list file.
type line struct {
	number int
	text   string
}

// readLines scans r and returns every significant line with its 1-based
// line number, trimmed of surrounding whitespace. The comment prefix is
// tested against the raw line, before trimming.
func readLines(r io.Reader, opts Options) ([]line, error) {
	scanner := bufio.NewScanner(r)
	// Lists can hold long identifiers; allow lines up to 1 MiB.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	prefix := opts.commentPrefix()
	var lines []line
	n := 0
	for scanner.Scan() {
		n++
		raw := scanner.Text()
		text := strings.TrimSpace(raw)
		if text == "" || strings.HasPrefix(raw, prefix) {
			continue
		}
		lines = append(lines, line{number: n, text: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read target list: %w", err)
	}
	return lines, nil
}

// LoadTargetSet reads a keep/remove list. Each significant line contributes
// its first tab-separated field, trimmed of surrounding whitespace.
func LoadTargetSet(r io.Reader, opts Options) (*model.TargetSet, error) {
	lines, err := readLines(r, opts)
	if err != nil {
		return nil, err
	}

	set := model.NewTargetSet()
	for _, l := range lines {
		field, _, _ := strings.Cut(l.text, "\t")
		set.Add(strings.TrimSpace(field))
	}
	return set, nil
}

// LoadLabelPairs reads a rename list.
//
// A line containing a tab yields {old: field 0, new: field 1 trimmed}.
// A line without a tab follows the legacy single-token convention:
// old is the text before the first underscore and new is the whole line
// trimmed, so "hCoV123_Brazil_2020" maps "hCoV123" to the full name.
// With opts.StrictRename such lines are rejected instead.
//
// When the same old name appears more than once the last mapping wins,
// keeping the position of the first occurrence.
func LoadLabelPairs(r io.Reader, opts Options) ([]model.LabelPair, error) {
	lines, err := readLines(r, opts)
	if err != nil {
		return nil, err
	}

	pairs := make([]model.LabelPair, 0, len(lines))
	index := make(map[string]int, len(lines))
	for _, l := range lines {
		pair, err := parsePair(l, opts)
		if err != nil {
			return nil, err
		}
		if i, ok := index[pair.Old]; ok {
			pairs[i] = pair
			continue
		}
		index[pair.Old] = len(pairs)
		pairs = append(pairs, pair)
	}
	return pairs, nil
}

func parsePair(l line, opts Options) (model.LabelPair, error) {
	if oldName, rest, ok := strings.Cut(l.text, "\t"); ok {
		newName, _, _ := strings.Cut(rest, "\t")
		newName = strings.TrimSpace(newName)
		oldName = strings.TrimSpace(oldName)
		if oldName == "" || newName == "" {
			return model.LabelPair{}, &model.MalformedListError{
				Line:   l.number,
				Text:   l.text,
				Reason: "both old and new names must be non-empty",
			}
		}
		return model.LabelPair{Old: oldName, New: newName}, nil
	}

	if opts.StrictRename {
		return model.LabelPair{}, &model.MalformedListError{
			Line:   l.number,
			Text:   l.text,
			Reason: "expected two tab-separated columns (old, new)",
		}
	}

	newName := strings.TrimSpace(l.text)
	oldName, _, _ := strings.Cut(newName, "_")
	return model.LabelPair{Old: oldName, New: newName}, nil
}

// Mapping indexes pairs by old name.
func Mapping(pairs []model.LabelPair) map[string]string {
	m := make(map[string]string, len(pairs))
	for _, p := range pairs {
		m[p.Old] = p.New
	}
	return m
}
