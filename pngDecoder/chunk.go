package pngDecoder

import (
	"hash/crc32"

	"pngdec/logging"
	"pngdec/oops"
	"pngdec/utils"
)

const (
	typeIHDR = "IHDR"
	typePLTE = "PLTE"
	typeIDAT = "IDAT"
	typeIEND = "IEND"
	typetRNS = "tRNS"
)

type Chunk struct {
	Length      uint32
	Type        [4]byte
	Data        []uint8
	CRC         uint32 // as stored in the file
	ComputedCRC uint32 // over type and data
}

func (c *Chunk) TypeString() string {
	return string(c.Type[:])
}

// Property bits live in bit 5 of each type byte.
func (c *Chunk) Ancillary() bool  { return c.Type[0]&0x20 != 0 }
func (c *Chunk) Private() bool    { return c.Type[1]&0x20 != 0 }
func (c *Chunk) Reserved() bool   { return c.Type[2]&0x20 != 0 }
func (c *Chunk) SafeToCopy() bool { return c.Type[3]&0x20 != 0 }

func (c *Chunk) Critical() bool {
	return !c.Ancillary()
}

func (c *Chunk) CRCValid() bool {
	return c.CRC == c.ComputedCRC
}

func chunkCRC(typ, data []byte) uint32 {
	crc := crc32.NewIEEE()
	crc.Write(typ)
	crc.Write(data)
	return crc.Sum32()
}

type PngDecoder struct {
	data     []uint8
	idx      uint
	finished bool
}

func NewDecoder(data []byte) (*PngDecoder, error) {
	if len(data) == 0 {
		return nil, oops.New(ErrInvalidArgument, "empty input")
	}
	if !isPNG(data) {
		return nil, oops.New(ErrBadSignature, "first %d bytes are not a PNG signature", len(pngHeader))
	}
	return &PngDecoder{
		data: data,
		idx:  uint(len(pngHeader)),
	}, nil
}

// nextChunk returns nil, nil once the input is used up.
func (p *PngDecoder) nextChunk() (*Chunk, error) {
	if p.finished || p.idx >= uint(len(p.data)) {
		p.finished = true
		return nil, nil
	}
	start := p.idx
	length, err := p.tryAdvance(4)
	if err != nil {
		return nil, oops.New(ErrMalformedChunk, "chunk length at offset %d", start)
	}
	chunk_type, err := p.tryAdvance(4)
	if err != nil {
		return nil, oops.New(ErrMalformedChunk, "chunk type at offset %d", start)
	}
	chunk_data, err := p.tryAdvance(uint(utils.BytesToLenght(length)))
	if err != nil {
		return nil, oops.New(ErrMalformedChunk, "chunk %q at offset %d claims %d bytes", chunk_type, start, utils.BytesToLenght(length))
	}
	crc, err := p.tryAdvance(4)
	if err != nil {
		return nil, oops.New(ErrMalformedChunk, "chunk %q at offset %d has no CRC", chunk_type, start)
	}

	c := &Chunk{
		Length:      utils.BytesToLenght(length),
		Data:        chunk_data,
		CRC:         utils.BytesToLenght(crc),
		ComputedCRC: chunkCRC(chunk_type, chunk_data),
	}
	copy(c.Type[:], chunk_type)
	return c, nil
}

func (p *PngDecoder) tryAdvance(length uint) ([]uint8, error) {
	if length > uint(len(p.data)) || p.idx+length > uint(len(p.data)) {
		return nil, oops.New(ErrMalformedChunk, "eof")
	}

	p.idx += length
	return p.data[p.idx-length : p.idx], nil
}

// Chunks splits the rest of the input into chunks, in file order.
func (p *PngDecoder) Chunks() ([]*Chunk, error) {
	var chunks []*Chunk
	for {
		chunk, err := p.nextChunk()
		if err != nil {
			return nil, err
		}
		if chunk == nil {
			return chunks, nil
		}
		logging.Trace().
			Str("type", chunk.TypeString()).
			Uint32("length", chunk.Length).
			Bool("crc_ok", chunk.CRCValid()).
			Msg("chunk")
		chunks = append(chunks, chunk)
	}
}

func findChunk(chunks []*Chunk, typ string) *Chunk {
	var found *Chunk
	for _, c := range chunks {
		if c.TypeString() == typ {
			found = c
		}
	}
	return found
}
