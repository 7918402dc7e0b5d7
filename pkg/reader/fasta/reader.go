// Package fasta provides a streaming reader for protein sequence databases
package fasta

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MaxAlex/alphapeptdeep/pkg/core"
)

const maxLineSize = 64 << 20 // 64 MiB

// RecordError describes a database record that could not be parsed. The
// reader skips such records and continues with the next one.
type RecordError struct {
	File    string
	Line    int // line of the record header
	Header  string
	Message string
}

func (e *RecordError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d: invalid record '%s': %s", e.File, e.Line, e.Header, e.Message)
	}
	return fmt.Sprintf("line %d: invalid record '%s': %s", e.Line, e.Header, e.Message)
}

// Reader provides streaming access to FASTA files
type Reader struct {
	scanner    *bufio.Scanner
	file       string
	lineNum    int
	header     string // pending header of the next record
	headerLine int
	current    *core.Protein
	skipped    []*RecordError
	err        error
}

// NewReader creates a new FASTA reader. file is only used in error messages.
func NewReader(r io.Reader, file string) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Reader{
		scanner: scanner,
		file:    file,
	}
}

// Next advances to the next valid protein. Returns false when no more
// records or on an I/O error. Malformed records are skipped and reported
// by Skipped.
func (r *Reader) Next() bool {
	r.current = nil

	for {
		prot, err := r.readRecord()
		if err == io.EOF {
			return false
		}
		if err != nil {
			if recErr, ok := err.(*RecordError); ok {
				r.skipped = append(r.skipped, recErr)
				continue
			}
			r.err = err
			return false
		}
		r.current = prot
		return true
	}
}

// Protein returns the current protein
func (r *Reader) Protein() *core.Protein {
	return r.current
}

// Skipped returns the malformed records seen so far
func (r *Reader) Skipped() []*RecordError {
	return r.skipped
}

// Err returns any I/O error encountered during reading
func (r *Reader) Err() error {
	return r.err
}

// readRecord reads one header and its sequence lines
func (r *Reader) readRecord() (*core.Protein, error) {
	var seq strings.Builder
	var orphan bool

	// Find the header unless the previous record already consumed it
	for r.header == "" {
		if !r.scanner.Scan() {
			if err := r.scanner.Err(); err != nil {
				return nil, err
			}
			if orphan {
				return nil, &RecordError{File: r.file, Line: r.lineNum, Message: "sequence data before the first header"}
			}
			return nil, io.EOF
		}
		r.lineNum++
		line := strings.TrimSpace(r.scanner.Text())
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		if strings.HasPrefix(line, ">") {
			if orphan {
				r.header, r.headerLine = line, r.lineNum
				return nil, &RecordError{File: r.file, Line: r.lineNum - 1, Message: "sequence data before the first header"}
			}
			r.header, r.headerLine = line, r.lineNum
			break
		}
		orphan = true
	}

	header, headerLine := r.header, r.headerLine
	r.header = ""

	for r.scanner.Scan() {
		r.lineNum++
		line := strings.TrimSpace(r.scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ">") {
			r.header, r.headerLine = line, r.lineNum
			break
		}
		seq.WriteString(line)
	}
	if err := r.scanner.Err(); err != nil {
		return nil, err
	}

	prot, err := parseRecord(header, seq.String())
	if err != nil {
		return nil, &RecordError{File: r.file, Line: headerLine, Header: header, Message: err.Error()}
	}
	return prot, nil
}

// parseRecord builds a protein from a header line and its sequence. The ID
// is the accession of a "db|ACCESSION|name" header, else the first token.
func parseRecord(header, seq string) (*core.Protein, error) {
	desc := strings.TrimSpace(strings.TrimPrefix(header, ">"))
	fields := strings.Fields(desc)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty header")
	}
	name := fields[0]

	id := name
	if parts := strings.Split(name, "|"); len(parts) > 1 {
		id = parts[1]
	}
	if id == "" {
		return nil, fmt.Errorf("empty accession")
	}

	seq = strings.TrimSuffix(strings.ToUpper(seq), "*")
	for i := 0; i < len(seq); i++ {
		if c := seq[i]; c < 'A' || c > 'Z' {
			return nil, fmt.Errorf("invalid character %q at residue %d", c, i+1)
		}
	}

	return &core.Protein{
		ID:          id,
		FullName:    name,
		Description: desc,
		Sequence:    seq,
	}, nil
}

// LoadProteins reads every file and returns the proteins in first-seen
// order. A later record with an already seen ID replaces the earlier one in
// place. Malformed records are returned separately; an error is returned
// only when a file cannot be read.
func LoadProteins(paths []string) ([]core.Protein, []*RecordError, error) {
	var proteins []core.Protein
	var skipped []*RecordError
	index := make(map[string]int)

	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, skipped, fmt.Errorf("failed to open sequence database: %w", err)
		}

		r := NewReader(f, path)
		for r.Next() {
			p := *r.Protein()
			if i, ok := index[p.ID]; ok {
				proteins[i] = p
				continue
			}
			index[p.ID] = len(proteins)
			proteins = append(proteins, p)
		}
		skipped = append(skipped, r.Skipped()...)
		f.Close()

		if err := r.Err(); err != nil {
			return nil, skipped, fmt.Errorf("error reading %s: %w", path, err)
		}
	}

	return proteins, skipped, nil
}
