/*
Package persist saves and loads a ReadMappingIndex to and from a single
file: a fixed header (magic, format version, genome length), the forward
and reverse FM-index blocks back to back, and a trailing Blake3 checksum
over everything written before it — the same hash the teacher reaches for
elsewhere in the corpus (seqhash) to get a fast, well-distributed digest
without pulling in a cryptographic hash package for a plain corruption
check.
*/
package persist

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/LucasOJ/read-mapping/fmindex"
	"github.com/LucasOJ/read-mapping/mapper"
	"lukechampine.com/blake3"
)

var fileMagic = [8]byte{'R', 'M', 'A', 'P', 'I', 'D', 'X', '1'}

const formatVersion = uint32(1)

const checksumSize = 32

// ErrCorruptIndex is returned when a loaded file fails its magic, version,
// checksum, or internal consistency checks.
var ErrCorruptIndex = fmindex.ErrCorruptIndex

// Save writes idx to path. The layout is: an 8-byte magic, a little-endian
// u32 format version, a little-endian u64 genome length, the forward
// FmIndex block, the reverse FmIndex block, then a 32-byte Blake3 digest
// of everything preceding it.
func Save(idx *mapper.ReadMappingIndex, path string) error {
	var buf bytes.Buffer
	buf.Write(fileMagic[:])
	if err := binary.Write(&buf, binary.LittleEndian, formatVersion); err != nil {
		return err
	}
	if err := binary.Write(&buf, binary.LittleEndian, uint64(idx.Len())); err != nil {
		return err
	}
	if err := idx.Forward().WriteTo(&buf); err != nil {
		return fmt.Errorf("persist: writing forward index: %w", err)
	}
	if err := idx.Reverse().WriteTo(&buf); err != nil {
		return fmt.Errorf("persist: writing reverse index: %w", err)
	}

	checksum := blake3.Sum256(buf.Bytes())

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if _, err := file.Write(buf.Bytes()); err != nil {
		return err
	}
	if _, err := file.Write(checksum[:]); err != nil {
		return err
	}
	return nil
}

// Load reads an index previously written by Save. It fails with
// ErrCorruptIndex wrapped with context if the magic or version don't
// match, the checksum doesn't verify, or either FM-index block is
// internally inconsistent.
func Load(path string) (*mapper.ReadMappingIndex, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(raw) < len(fileMagic)+4+8+checksumSize {
		return nil, fmt.Errorf("%w: file too short", ErrCorruptIndex)
	}

	body, wantChecksum := raw[:len(raw)-checksumSize], raw[len(raw)-checksumSize:]
	gotChecksum := blake3.Sum256(body)
	if !bytes.Equal(gotChecksum[:], wantChecksum) {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrCorruptIndex)
	}

	r := bytes.NewReader(body)

	var magic [8]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptIndex, err)
	}
	if magic != fileMagic {
		return nil, fmt.Errorf("%w: bad magic", ErrCorruptIndex)
	}

	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptIndex, err)
	}
	if version != formatVersion {
		return nil, fmt.Errorf("%w: unsupported format version %d", ErrCorruptIndex, version)
	}

	var n uint64
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptIndex, err)
	}

	forward, err := fmindex.ReadFmIndexFrom(r, int(n))
	if err != nil {
		return nil, fmt.Errorf("%w: forward index: %v", ErrCorruptIndex, err)
	}
	reverse, err := fmindex.ReadFmIndexFrom(r, int(n))
	if err != nil {
		return nil, fmt.Errorf("%w: reverse index: %v", ErrCorruptIndex, err)
	}

	return mapper.FromFmIndexes(forward, reverse, int(n)), nil
}
