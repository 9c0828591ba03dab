package engine

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// Weight blob layout, little-endian: a uint32 table count, then each
// table as a uint64 length followed by that many float32 values. The
// plain network stores 4 tables; a TC snapshot stores 12 (values, signed
// accumulators, absolute accumulators). Loading is all-or-nothing.

// WriteBlob serializes tables in order.
func WriteBlob(w io.Writer, tables [][]float32) error {
	bw := bufio.NewWriterSize(w, 1<<20)
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(tables))); err != nil {
		return fmt.Errorf("write table count: %w", err)
	}
	for i, tab := range tables {
		if err := binary.Write(bw, binary.LittleEndian, uint64(len(tab))); err != nil {
			return fmt.Errorf("write table %d length: %w", i, err)
		}
		if err := binary.Write(bw, binary.LittleEndian, tab); err != nil {
			return fmt.Errorf("write table %d: %w", i, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush weight blob: %w", err)
	}
	return nil
}

// ReadBlob deserializes every table in the blob.
func ReadBlob(r io.Reader) ([][]float32, error) {
	br := bufio.NewReaderSize(r, 1<<20)
	var count uint32
	if err := binary.Read(br, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("read table count: %w", err)
	}
	tables := make([][]float32, count)
	for i := range tables {
		var length uint64
		if err := binary.Read(br, binary.LittleEndian, &length); err != nil {
			return nil, fmt.Errorf("read table %d length: %w", i, err)
		}
		tab := make([]float32, length)
		if err := binary.Read(br, binary.LittleEndian, tab); err != nil {
			return nil, fmt.Errorf("read table %d: %w", i, err)
		}
		tables[i] = tab
	}
	return tables, nil
}

// WriteBlobFile writes tables to path, truncating any existing file.
func WriteBlobFile(path string, tables [][]float32) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create weight file: %w", err)
	}
	defer f.Close()
	if err := WriteBlob(f, tables); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReadBlobFile loads every table stored at path.
func ReadBlobFile(path string) ([][]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open weight file: %w", err)
	}
	defer f.Close()
	tables, err := ReadBlob(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return tables, nil
}

// Save writes the network's value tables to path.
func (n *Network) Save(path string) error {
	return WriteBlobFile(path, n.Tables[:])
}

// Load replaces the network's value tables with the first TableCount
// tables of the blob at path. Extra tables (a TC snapshot's
// accumulators) are returned to the caller; a malformed blob leaves the
// network unchanged.
func (n *Network) Load(path string) ([][]float32, error) {
	tables, err := ReadBlobFile(path)
	if err != nil {
		return nil, err
	}
	if len(tables) < TableCount {
		return nil, fmt.Errorf("weight file %s holds %d tables, want at least %d", path, len(tables), TableCount)
	}
	size := n.TableSize()
	for i := 0; i < TableCount; i++ {
		if len(tables[i]) != size {
			return nil, fmt.Errorf("weight file %s table %d has %d entries, want %d (MaxIndex %d)",
				path, i, len(tables[i]), size, n.MaxIndex)
		}
	}
	for i := 0; i < TableCount; i++ {
		n.Tables[i] = tables[i]
	}
	return tables[TableCount:], nil
}
