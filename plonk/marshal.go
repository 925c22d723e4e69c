// Copyright 2020 ConsenSys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package plonk

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/mengsuenyan/plonky/ecc/bls12377"
	"github.com/mengsuenyan/plonky/ecc/bls12377/fp"
	"github.com/mengsuenyan/plonky/ecc/bls12377/fr"
)

// ErrInvalidEncoding is returned by ReadFrom when the wire data does
// not decode to a valid VerificationKey.
var ErrInvalidEncoding = errors.New("plonk: invalid VerificationKey encoding")

// WriteTo serializes vk: a length-prefixed sequence of affine points
// for selectors (each point an infinity flag byte followed by 48-byte
// x and y), the same for sigmas, then degree_log, degree_pow and
// security_bits as 4-byte big-endian integers, then the 32-byte
// subgroup generator. It implements io.WriterTo.
func (vk *VerificationKey) WriteTo(w io.Writer) (int64, error) {
	var total int64
	n, err := writePointSlice(w, vk.SelectorCommitments)
	total += n
	if err != nil {
		return total, err
	}
	n, err = writePointSlice(w, vk.SigmaCommitments)
	total += n
	if err != nil {
		return total, err
	}
	header := make([]byte, 16)
	binary.BigEndian.PutUint32(header[0:4], uint32(vk.DegreeLog))
	binary.BigEndian.PutUint32(header[4:8], uint32(vk.DegreePow))
	binary.BigEndian.PutUint32(header[8:12], uint32(vk.SecurityBits))
	gBytes := vk.SubgroupGenerator.Bytes()
	nw, err := w.Write(header[:12])
	total += int64(nw)
	if err != nil {
		return total, err
	}
	nw, err = w.Write(gBytes[:])
	total += int64(nw)
	return total, err
}

// ReadFrom decodes a VerificationKey written by WriteTo. It implements
// io.ReaderFrom.
func (vk *VerificationKey) ReadFrom(r io.Reader) (int64, error) {
	var total int64
	selectors, n, err := readPointSlice(r)
	total += n
	if err != nil {
		return total, err
	}
	sigmas, n, err := readPointSlice(r)
	total += n
	if err != nil {
		return total, err
	}
	header := make([]byte, 12)
	nr, err := io.ReadFull(r, header)
	total += int64(nr)
	if err != nil {
		return total, err
	}
	gBuf := make([]byte, 32)
	nr, err = io.ReadFull(r, gBuf)
	total += int64(nr)
	if err != nil {
		return total, err
	}
	var g fr.Element
	if _, ok := g.SetCanonicalBytes(gBuf); !ok {
		return total, ErrInvalidEncoding
	}

	vk.SelectorCommitments = selectors
	vk.SigmaCommitments = sigmas
	vk.DegreeLog = int(binary.BigEndian.Uint32(header[0:4]))
	vk.DegreePow = int(binary.BigEndian.Uint32(header[4:8]))
	vk.SecurityBits = int(binary.BigEndian.Uint32(header[8:12]))
	vk.SubgroupGenerator = g
	return total, nil
}

func writePointSlice(w io.Writer, points []bls12377.G1) (int64, error) {
	var total int64
	lenBuf := make([]byte, 4)
	binary.BigEndian.PutUint32(lenBuf, uint32(len(points)))
	n, err := w.Write(lenBuf)
	total += int64(n)
	if err != nil {
		return total, err
	}
	for _, p := range points {
		x, y, infinity := p.Affine()
		flag := byte(0)
		if infinity {
			flag = 1
		}
		n, err = w.Write([]byte{flag})
		total += int64(n)
		if err != nil {
			return total, err
		}
		xb := x.Bytes()
		yb := y.Bytes()
		n, err = w.Write(xb[:])
		total += int64(n)
		if err != nil {
			return total, err
		}
		n, err = w.Write(yb[:])
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func readPointSlice(r io.Reader) ([]bls12377.G1, int64, error) {
	var total int64
	lenBuf := make([]byte, 4)
	n, err := io.ReadFull(r, lenBuf)
	total += int64(n)
	if err != nil {
		return nil, total, err
	}
	count := binary.BigEndian.Uint32(lenBuf)
	out := make([]bls12377.G1, count)
	for i := range out {
		flagBuf := make([]byte, 1)
		n, err = io.ReadFull(r, flagBuf)
		total += int64(n)
		if err != nil {
			return nil, total, err
		}
		xb := make([]byte, 48)
		n, err = io.ReadFull(r, xb)
		total += int64(n)
		if err != nil {
			return nil, total, err
		}
		yb := make([]byte, 48)
		n, err = io.ReadFull(r, yb)
		total += int64(n)
		if err != nil {
			return nil, total, err
		}
		if flagBuf[0] == 1 {
			out[i] = bls12377.Identity()
			continue
		}
		var x, y fp.Element
		if _, ok := x.SetCanonicalBytes(xb); !ok {
			return nil, total, ErrInvalidEncoding
		}
		if _, ok := y.SetCanonicalBytes(yb); !ok {
			return nil, total, ErrInvalidEncoding
		}
		out[i] = bls12377.FromAffine(x, y)
	}
	return out, total, nil
}
