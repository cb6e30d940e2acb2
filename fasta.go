package novelins

import (
	"io"

	"github.com/kortschak/biogo/io/seqio/fasta"
)

// ReadContig is the value sent over the channel returned by ReadContigs
// each time a new contig is read from a sample's FASTA file.
type ReadContig struct {
	Contig *Contig
	Err    error
}

// ReadContigs streams the forward-strand contigs of one sample's FASTA
// file, tagging each with sample so the global id space can later be
// built across many samples. Errors are delivered on the channel rather
// than returned directly so a caller can keep draining contigs already
// read before acting on a late read failure, the same shape the
// teacher's own ReadOriginalSeqs uses for its coarse-compression input.
func ReadContigs(fileName, sample string) (chan ReadContig, error) {
	reader, err := fasta.NewReaderName(fileName)
	if err != nil {
		return nil, &IoError{Op: "open contig fasta", Path: fileName, Err: err}
	}
	out := make(chan ReadContig, 200)
	go func() {
		defer close(out)
		for {
			seq, err := reader.Read()
			if err == io.EOF {
				return
			}
			if err != nil {
				out <- ReadContig{Err: &IoError{Op: "read contig fasta", Path: fileName, Err: err}}
				return
			}
			out <- ReadContig{Contig: &Contig{
				ID:  ContigID{Sample: sample, Name: seq.ID, Forward: true},
				Seq: append([]byte(nil), seq.Seq...),
			}}
		}
	}()
	return out, nil
}

// LoadSampleContigs reads every contig in a sample's FASTA file into
// memory, in file order. Order matters: it fixes the forward half of
// the global id space (see ContigSpace).
func LoadSampleContigs(fileName, sample string) ([]*Contig, error) {
	ch, err := ReadContigs(fileName, sample)
	if err != nil {
		return nil, err
	}
	var contigs []*Contig
	for r := range ch {
		if r.Err != nil {
			return nil, r.Err
		}
		contigs = append(contigs, r.Contig)
	}
	if len(contigs) == 0 {
		return nil, &EmptyInputError{Path: fileName}
	}
	return contigs, nil
}
