package fmindex

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/LucasOJ/read-mapping/alphabet"
)

// WriteTo serializes this FmIndex's on-disk block: C-table, sampling
// periods, runs, checkpoints, and the sampled-SA bitmap and samples. The
// genome length n is not written here — it is shared by both directions
// and lives once in the envelope persist.Save writes around two blocks.
func (idx *FmIndex) WriteTo(w io.Writer) error {
	for _, v := range idx.cTable {
		if err := binary.Write(w, binary.LittleEndian, uint64(v)); err != nil {
			return err
		}
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(idx.r)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(idx.k)); err != nil {
		return err
	}

	if err := binary.Write(w, binary.LittleEndian, uint64(len(idx.bwt.runs))); err != nil {
		return err
	}
	for _, rn := range idx.bwt.runs {
		if _, err := w.Write([]byte{byte(rn.symbol)}); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, uint32(rn.length)); err != nil {
			return err
		}
	}

	var flatCheckpoints []uint64
	for sigma := 0; sigma < 5; sigma++ {
		for _, v := range idx.bwt.checkpoints[sigma] {
			flatCheckpoints = append(flatCheckpoints, uint64(v))
		}
	}
	if err := binary.Write(w, binary.LittleEndian, uint64(len(flatCheckpoints))); err != nil {
		return err
	}
	for _, v := range flatCheckpoints {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return err
		}
	}

	bitmapBytes := bitsetToBytes(idx.sampledSA.marker.raw)
	if err := binary.Write(w, binary.LittleEndian, uint64(len(bitmapBytes))); err != nil {
		return err
	}
	if _, err := w.Write(bitmapBytes); err != nil {
		return err
	}

	if err := binary.Write(w, binary.LittleEndian, uint64(len(idx.sampledSA.samples))); err != nil {
		return err
	}
	for _, v := range idx.sampledSA.samples {
		if err := binary.Write(w, binary.LittleEndian, uint64(v)); err != nil {
			return err
		}
	}

	return nil
}

// ReadFmIndexFrom reconstructs an FmIndex block for a genome of length n
// (shared across the forward and reverse blocks by the envelope format).
// It fails with ErrCorruptIndex on any internal inconsistency: a run
// symbol out of range, run lengths that don't sum to n+1, a checkpoint
// count not divisible across the five symbols, or a sample count that
// doesn't match the number of set bits in the bitmap.
func ReadFmIndexFrom(r io.Reader, n int) (idx *FmIndex, err error) {
	defer recoverToError("ReadFmIndexFrom", &err)

	var c cTable
	for i := range c {
		var v uint64
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return nil, err
		}
		c[i] = int(v)
	}

	var rPeriod, kPeriod uint32
	if err := binary.Read(r, binary.LittleEndian, &rPeriod); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.LittleEndian, &kPeriod); err != nil {
		return nil, err
	}

	var numRuns uint64
	if err := binary.Read(r, binary.LittleEndian, &numRuns); err != nil {
		return nil, err
	}
	runs := make([]run, numRuns)
	symBuf := make([]byte, 1)
	for i := range runs {
		if _, err := io.ReadFull(r, symBuf); err != nil {
			return nil, err
		}
		if symBuf[0] > byte(alphabet.Sentinel) {
			return nil, fmt.Errorf("%w: run symbol %d out of range", ErrCorruptIndex, symBuf[0])
		}
		var length uint32
		if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
			return nil, err
		}
		runs[i] = run{symbol: alphabet.Symbol(symBuf[0]), length: int(length)}
	}

	runOffsets := make([]int, numRuns+1)
	for i, rn := range runs {
		runOffsets[i+1] = runOffsets[i] + rn.length
	}
	if runOffsets[numRuns] != n+1 {
		return nil, fmt.Errorf("%w: run lengths sum to %d, want %d", ErrCorruptIndex, runOffsets[numRuns], n+1)
	}

	var numCheckpoints uint64
	if err := binary.Read(r, binary.LittleEndian, &numCheckpoints); err != nil {
		return nil, err
	}
	if numCheckpoints%5 != 0 {
		return nil, fmt.Errorf("%w: checkpoint count %d not divisible by 5", ErrCorruptIndex, numCheckpoints)
	}
	perSymbol := numCheckpoints / 5
	var checkpoints [5][]int
	for sigma := 0; sigma < 5; sigma++ {
		checkpoints[sigma] = make([]int, perSymbol)
		for j := range checkpoints[sigma] {
			var v uint64
			if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
				return nil, err
			}
			checkpoints[sigma][j] = int(v)
		}
	}

	bwt := rleBwt{runs: runs, runOffsets: runOffsets, checkpoints: checkpoints, r: int(rPeriod)}

	var bitmapLen uint64
	if err := binary.Read(r, binary.LittleEndian, &bitmapLen); err != nil {
		return nil, err
	}
	bitmapBytes := make([]byte, bitmapLen)
	if _, err := io.ReadFull(r, bitmapBytes); err != nil {
		return nil, err
	}
	bv := bitsetFromBytes(bitmapBytes, n+1)

	var numSamples uint64
	if err := binary.Read(r, binary.LittleEndian, &numSamples); err != nil {
		return nil, err
	}
	samples := make([]int, numSamples)
	for i := range samples {
		var v uint64
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return nil, err
		}
		samples[i] = int(v)
	}

	posToRow := make(map[int]int, numSamples)
	sampleIdx := 0
	for row := 0; row <= n; row++ {
		if bv.get(row) {
			if sampleIdx >= len(samples) {
				return nil, fmt.Errorf("%w: more sampled rows than stored samples", ErrCorruptIndex)
			}
			posToRow[samples[sampleIdx]] = row
			sampleIdx++
		}
	}
	if sampleIdx != len(samples) {
		return nil, fmt.Errorf("%w: sample count %d does not match bitmap", ErrCorruptIndex, len(samples))
	}

	ssa := sampledSA{
		k:        int(kPeriod),
		marker:   newRankBitVector(bv),
		samples:  samples,
		posToRow: posToRow,
	}

	return &FmIndex{
		length:    n,
		bwt:       bwt,
		cTable:    c,
		sampledSA: ssa,
		r:         int(rPeriod),
		k:         int(kPeriod),
	}, nil
}

func bitsetToBytes(bv bitset) []byte {
	out := make([]byte, len(bv.words)*8)
	for i, word := range bv.words {
		binary.BigEndian.PutUint64(out[i*8:], word)
	}
	return out
}

func bitsetFromBytes(data []byte, numberOfBits int) bitset {
	bv := newBitVector(numberOfBits)
	for i := range bv.words {
		if (i+1)*8 <= len(data) {
			bv.words[i] = binary.BigEndian.Uint64(data[i*8 : (i+1)*8])
		}
	}
	return bv
}
