package fasta

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/seqtree/internal/model"
)

// TestRead parses the common FASTA shapes seen in surveillance data.
func TestRead(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []model.SequenceRecord
	}{
		{
			name:  "single line records",
			input: ">seq1\nACGT\n>seq2\nTTGA\n",
			want: []model.SequenceRecord{
				{Label: "seq1", Residues: "ACGT"},
				{Label: "seq2", Residues: "TTGA"},
			},
		},
		{
			name:  "wrapped sequence is concatenated",
			input: ">seq1\nACG\nTAC\nGT\n",
			want: []model.SequenceRecord{
				{Label: "seq1", Residues: "ACGTACGT"},
			},
		},
		{
			name:  "full description is the label",
			input: ">hCoV-19/Brazil/SP-01/2020|EPI_ISL_1|2020-03-01 extra words\nacgt\n",
			want: []model.SequenceRecord{
				{Label: "hCoV-19/Brazil/SP-01/2020|EPI_ISL_1|2020-03-01 extra words", Residues: "acgt"},
			},
		},
		{
			name:  "case preserved and whitespace dropped",
			input: ">s\r\nac gt\r\n\r\nNN\r\n",
			want: []model.SequenceRecord{
				{Label: "s", Residues: "acgtNN"},
			},
		},
		{
			name:  "empty sequence",
			input: ">empty\n>next\nA\n",
			want: []model.SequenceRecord{
				{Label: "empty", Residues: ""},
				{Label: "next", Residues: "A"},
			},
		},
		{
			name:  "duplicate labels are both returned",
			input: ">dup\nA\n>dup\nC\n",
			want: []model.SequenceRecord{
				{Label: "dup", Residues: "A"},
				{Label: "dup", Residues: "C"},
			},
		},
		{
			name:  "leading blank and comment lines",
			input: "\n;comment\n>s\nA",
			want: []model.SequenceRecord{
				{Label: "s", Residues: "A"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestRead_Empty returns no records and no error for an empty file.
func TestRead_Empty(t *testing.T) {
	got, err := Read(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)
}

// TestRead_DataBeforeHeader reports a MalformedInputError with the line.
func TestRead_DataBeforeHeader(t *testing.T) {
	_, err := Read(strings.NewReader("\nACGT\n>s\nA\n"))
	require.Error(t, err)

	var mie *model.MalformedInputError
	require.True(t, errors.As(err, &mie))
	assert.Equal(t, model.FormatFASTA, mie.Format)
	assert.Equal(t, 2, mie.Line)
	assert.Equal(t, -1, mie.Offset)
}

// TestRead_ResidueBytesPreserved keeps bytes that are not valid UTF-8
// exactly as they appear in the file.
func TestRead_ResidueBytesPreserved(t *testing.T) {
	got, err := Read(strings.NewReader(">s\nAC\xffGT\n>t\nn\xe9\tn\n"))
	require.NoError(t, err)
	assert.Equal(t, []model.SequenceRecord{
		{Label: "s", Residues: "AC\xffGT"},
		{Label: "t", Residues: "n\xe9n"},
	}, got)
}

// TestWrite checks the unwrapped output layout.
func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, []model.SequenceRecord{
		{Label: "new1", Residues: "ACGT"},
		{Label: "new2", Residues: ""},
	})
	require.NoError(t, err)
	assert.Equal(t, ">new1\nACGT\n>new2\n\n", buf.String())
}

// TestReadWrite_RoundTrip verifies that writing parsed records and parsing
// them again is lossless.
func TestReadWrite_RoundTrip(t *testing.T) {
	in := []model.SequenceRecord{
		{Label: "a b|c", Residues: strings.Repeat("ACGT", 100)},
		{Label: "d", Residues: "N"},
	}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, in))

	out, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
