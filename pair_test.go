package novelins

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPairSetInsertDeduplicates(t *testing.T) {
	require := require.New(t)

	s := NewPairSet()
	require.True(s.Insert(3, 1), "first insert of a pair should report added")
	require.False(s.Insert(1, 3), "reversed duplicate should be suppressed")
	require.Equal(1, s.Len())
	require.True(s.Contains(1, 3))
	require.True(s.Contains(3, 1))
}

func TestPairSetOrderedIsLexicographic(t *testing.T) {
	require := require.New(t)

	s := NewPairSet()
	s.Insert(5, 2)
	s.Insert(1, 9)
	s.Insert(1, 4)

	ordered := s.Ordered()
	require.Len(ordered, 3)
	require.Equal(AlignedPair{A: 1, B: 4}, ordered[0])
	require.Equal(AlignedPair{A: 1, B: 9}, ordered[1])
	require.Equal(AlignedPair{A: 2, B: 5}, ordered[2])
}

func TestPairSetInsertTwinClosed(t *testing.T) {
	require := require.New(t)

	n := 10
	s := NewPairSet()
	s.InsertTwinClosed(2, 7, n)

	require.True(s.Contains(2, 7))
	require.True(s.Contains(rc(2, n), rc(7, n)), "twin-closed pair must also be present")
}

func TestPairSetWriteAndReadRoundTrip(t *testing.T) {
	require := require.New(t)

	s := NewPairSet()
	s.Insert(0, 1)
	s.Insert(2, 3)

	var buf bytes.Buffer
	require.NoError(s.WritePairFile(&buf))

	tmp, err := os.CreateTemp("", "pairs-*.txt")
	require.NoError(err)
	defer os.Remove(tmp.Name())
	_, err = tmp.Write(buf.Bytes())
	require.NoError(err)
	require.NoError(tmp.Close())

	read, err := ReadPairFile(tmp.Name())
	require.NoError(err)
	require.Equal(s.Ordered(), read.Ordered())
}

func TestReadPairFileMalformedLine(t *testing.T) {
	require := require.New(t)

	tmp, err := os.CreateTemp("", "pairs-*.txt")
	require.NoError(err)
	defer os.Remove(tmp.Name())
	_, err = tmp.WriteString("1 2\nnot-a-pair\n3 4\n")
	require.NoError(err)
	require.NoError(tmp.Close())

	_, err = ReadPairFile(tmp.Name())
	require.Error(err)
	var malformed *MalformedPairFileError
	require.ErrorAs(err, &malformed)
	require.Equal(2, malformed.Line)
}
