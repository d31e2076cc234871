package slicer

// RLEImage is the packed, run-length-encoded wire form of a Raster,
// grounded on original_source/backend/slice.py's rle_encode_packed /
// rle_decode_packed (a thin wrapper over numpy's packbits + a byte-level
// RLE pass). spec.md §9 calls this out explicitly as the wire format —
// storing decoded bytes directly would be a different, non-conformant
// format.
type RLEImage struct {
	Width, Height int
	Values        []byte
	RunLengths    []int
}

// packBits packs one bit per pixel (pix[i] > 0), most-significant-bit
// first within each byte, zero-padding the final byte — the same layout
// numpy.packbits produces for a flattened row-major bit array.
func packBits(pix []byte, w, h int) []byte {
	n := w * h
	packed := make([]byte, (n+7)/8)
	for i := 0; i < n; i++ {
		if pix[i] > 0 {
			packed[i/8] |= 1 << uint(7-i%8)
		}
	}
	return packed
}

// unpackBits is packBits's inverse, truncated to n bits.
func unpackBits(packed []byte, n int) []byte {
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		if packed[i/8]&(1<<uint(7-i%8)) != 0 {
			out[i] = 1
		}
	}
	return out
}

// EncodeRLE packs r's pixels to bits and run-length-encodes the packed
// byte stream.
func EncodeRLE(r *Raster) RLEImage {
	packed := packBits(r.Pix, r.Width, r.Height)
	img := RLEImage{Width: r.Width, Height: r.Height}
	if len(packed) == 0 {
		return img
	}
	cur := packed[0]
	runLen := 0
	for _, b := range packed {
		if b == cur {
			runLen++
			continue
		}
		img.Values = append(img.Values, cur)
		img.RunLengths = append(img.RunLengths, runLen)
		cur = b
		runLen = 1
	}
	img.Values = append(img.Values, cur)
	img.RunLengths = append(img.RunLengths, runLen)
	return img
}

// Decode expands an RLEImage back into a full Raster.
func (img RLEImage) Decode() *Raster {
	n := img.Width * img.Height
	packed := make([]byte, 0, (n+7)/8)
	for i, v := range img.Values {
		for j := 0; j < img.RunLengths[i]; j++ {
			packed = append(packed, v)
		}
	}
	bits := unpackBits(packed, n)
	r := NewRaster(img.Width, img.Height)
	for i, bit := range bits {
		if bit != 0 {
			r.Pix[i] = 255
		}
	}
	return r
}

// IsAllZeros reports whether every packed byte value is zero, i.e. the
// whole raster is dark.
func (img RLEImage) IsAllZeros() bool {
	for _, v := range img.Values {
		if v != 0 {
			return false
		}
	}
	return true
}

// IsAllNonZero reports whether every packed byte value is nonzero.
func (img RLEImage) IsAllNonZero() bool {
	for _, v := range img.Values {
		if v == 0 {
			return false
		}
	}
	return true
}
