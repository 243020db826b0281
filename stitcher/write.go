package stitcher

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

const fastaLineWidth = 60

// Record is one named sequence to emit as a FASTA record.
type Record struct {
	Header   string
	Sequence string
}

// WriteFASTA writes every record to path, each wrapped at fastaLineWidth
// columns, in the order given.
func WriteFASTA(path string, records []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("stitcher: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := writeRecords(w, records); err != nil {
		return fmt.Errorf("stitcher: %w", err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("stitcher: %w", err)
	}
	return nil
}

func writeRecords(w io.Writer, records []Record) error {
	for _, rec := range records {
		if _, err := fmt.Fprintf(w, ">%s\n", rec.Header); err != nil {
			return err
		}
		for i := 0; i < len(rec.Sequence); i += fastaLineWidth {
			end := i + fastaLineWidth
			if end > len(rec.Sequence) {
				end = len(rec.Sequence)
			}
			if _, err := fmt.Fprintln(w, rec.Sequence[i:end]); err != nil {
				return err
			}
		}
	}
	return nil
}
