package fasta

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	biofasta "github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	"github.com/shinji-kodama/seqtree/internal/model"
)

// Read parses every record from r in file order.
//
// Records are decoded by the biogo FASTA reader. The label is the whole
// header: biogo splits it into an ID and a description at the first blank,
// and the two are joined back with a single space. Residue bytes are copied
// unchanged apart from ASCII whitespace, so case and any non-ASCII bytes
// survive.
//
// It returns a *model.MalformedInputError for structural problems.
func Read(r io.Reader) ([]model.SequenceRecord, error) {
	br := bufio.NewReader(r)

	// Blank and ";" comment lines may precede the first header. Anything
	// else there is reported with its line number.
	if err := skipPreamble(br); err != nil {
		return nil, err
	}

	var records []model.SequenceRecord
	sc := seqio.NewScanner(biofasta.NewReader(br, linear.NewSeq("", nil, alphabet.DNA)))
	for sc.Next() {
		s, ok := sc.Seq().(*linear.Seq)
		if !ok {
			return nil, fmt.Errorf("unexpected sequence type %T", sc.Seq())
		}
		records = append(records, model.SequenceRecord{
			Label:    label(s.ID, s.Desc),
			Residues: residues(s.Seq),
		})
	}
	if err := sc.Error(); err != nil {
		return nil, &model.MalformedInputError{
			Format: model.FormatFASTA,
			Offset: -1,
			Reason: err.Error(),
		}
	}
	return records, nil
}

// skipPreamble consumes blank and ";" lines up to the first '>'.
func skipPreamble(br *bufio.Reader) error {
	n := 0
	for {
		head, err := br.Peek(1)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read FASTA input: %w", err)
		}
		if head[0] == '>' {
			return nil
		}

		text, err := br.ReadString('\n')
		n++
		trimmed := strings.TrimSpace(text)
		if trimmed != "" && !strings.HasPrefix(trimmed, ";") {
			return &model.MalformedInputError{
				Format: model.FormatFASTA,
				Line:   n,
				Offset: -1,
				Reason: "sequence data before first '>' header",
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read FASTA input: %w", err)
		}
	}
}

func label(id, desc string) string {
	if desc == "" {
		return id
	}
	return id + " " + desc
}

// residues copies letters into a string, dropping ASCII whitespace only.
func residues(letters alphabet.Letters) string {
	b := make([]byte, 0, len(letters))
	for _, l := range letters {
		switch l {
		case ' ', '\t', '\n', '\v', '\f', '\r':
			continue
		}
		b = append(b, byte(l))
	}
	return string(b)
}

// Write serializes records to w, one unwrapped record per two lines.
// Residues are written as given; callers upper-case them beforehand.
func Write(w io.Writer, records []model.SequenceRecord) error {
	for _, rec := range records {
		if err := WriteRecord(w, rec); err != nil {
			return err
		}
	}
	return nil
}

// WriteRecord serializes a single record.
func WriteRecord(w io.Writer, rec model.SequenceRecord) error {
	if _, err := fmt.Fprintf(w, ">%s\n%s\n", rec.Label, rec.Residues); err != nil {
		return fmt.Errorf("failed to write FASTA record %q: %w", rec.Label, err)
	}
	return nil
}
