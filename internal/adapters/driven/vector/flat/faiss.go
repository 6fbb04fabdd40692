package flat

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/custodia-labs/hadith-search/internal/core/domain"
)

// FAISS serialisation constants for IndexFlatIP.
const (
	fourCCFlatIP     = "IxFI"
	fourCCFlatL2     = "IxF2"
	metricInnerProd  = int32(0)
	headerDummyValue = int64(1 << 20)
)

var byteOrder = binary.LittleEndian

// header is the common FAISS index header.
type header struct {
	Dim       int32
	NTotal    int64
	Dummy1    int64
	Dummy2    int64
	IsTrained uint8
	Metric    int32
}

// ReadFile loads a FAISS IndexFlatIP file.
func ReadFile(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrVectorIndexUnavailable, err)
	}
	defer f.Close()

	idx, err := Read(bufio.NewReaderSize(f, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrVectorIndexUnavailable, path, err)
	}
	return idx, nil
}

// Read decodes a FAISS IndexFlatIP stream.
func Read(r io.Reader) (*Index, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, fmt.Errorf("read fourcc: %w", err)
	}
	switch string(magic[:]) {
	case fourCCFlatIP:
	case fourCCFlatL2:
		return nil, fmt.Errorf("%w: L2 flat index, inner product required", domain.ErrUnsupportedType)
	default:
		return nil, fmt.Errorf("%w: index type %q", domain.ErrUnsupportedType, magic[:])
	}

	var h header
	if err := binary.Read(r, byteOrder, &h); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if h.Metric != metricInnerProd {
		return nil, fmt.Errorf("%w: metric %d, inner product required", domain.ErrUnsupportedType, h.Metric)
	}
	if h.Dim <= 0 || h.NTotal < 0 {
		return nil, fmt.Errorf("%w: header d=%d ntotal=%d", domain.ErrInvalidInput, h.Dim, h.NTotal)
	}

	var count uint64
	if err := binary.Read(r, byteOrder, &count); err != nil {
		return nil, fmt.Errorf("read vector count: %w", err)
	}
	if count != uint64(h.Dim)*uint64(h.NTotal) {
		return nil, fmt.Errorf("%w: %d floats for %d vectors of dimension %d",
			domain.ErrInvalidInput, count, h.NTotal, h.Dim)
	}

	data := make([]float32, count)
	if err := binary.Read(r, byteOrder, data); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: truncated vector data", domain.ErrInvalidInput)
		}
		return nil, fmt.Errorf("read vectors: %w", err)
	}

	return &Index{dim: int(h.Dim), data: data}, nil
}

// WriteFile saves the index in FAISS IndexFlatIP format.
func (x *Index) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(f)
	if err := x.Write(w); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Write encodes the index in FAISS IndexFlatIP format.
func (x *Index) Write(w io.Writer) error {
	x.mu.RLock()
	defer x.mu.RUnlock()

	if _, err := io.WriteString(w, fourCCFlatIP); err != nil {
		return err
	}
	h := header{
		Dim:       int32(x.dim),
		NTotal:    int64(x.len()),
		Dummy1:    headerDummyValue,
		Dummy2:    headerDummyValue,
		IsTrained: 1,
		Metric:    metricInnerProd,
	}
	if err := binary.Write(w, byteOrder, h); err != nil {
		return err
	}
	if err := binary.Write(w, byteOrder, uint64(len(x.data))); err != nil {
		return err
	}
	return binary.Write(w, byteOrder, x.data)
}
