package novelins

import (
	"bufio"
	"fmt"
	"io"
)

// pathTag returns the single- or double-letter tag spec.md section
// 4.8 assigns to the i-th (0-indexed) of total enumerated paths: a
// single lowercase letter when at most 26 paths were produced, or a
// two-letter base-26 tag otherwise. spec.md's own wording ("at most
// 26 paths") is authoritative here even though the C++ reference this
// module was distilled from switches one path earlier, at 25 (see
// DESIGN.md).
func pathTag(i, total int) string {
	if total <= 26 {
		return string(rune('a' + i))
	}
	hi, lo := i/26, i%26
	return string([]rune{rune('a' + hi), rune('a' + lo)})
}

// WriteSupercontigs writes every path of a merged component as a
// FASTA record, named per spec.md section 4.8:
// COMPONENT_<batchIndex>.<pos>_<tag>_length_<L>_size_<N>, where size
// is the component's total contig count (constant across every path
// emitted for that component).
func WriteSupercontigs(w io.Writer, batchIndex, componentPos, size int, paths []Path) error {
	bw := bufio.NewWriter(w)
	for i, p := range paths {
		tag := pathTag(i, len(paths))
		if _, err := fmt.Fprintf(bw, ">COMPONENT_%d.%d_%s_length_%d_size_%d\n%s\n",
			batchIndex, componentPos, tag, len(p.Seq), size, p.Seq); err != nil {
			return err
		}
	}
	return bw.Flush()
}
