package mcwire

import (
	"bytes"
	"io"
	"testing"
)

func TestZlib_RoundTrip(t *testing.T) {
	tests := []struct {
		desc string
		z    Zlib
		data []byte
	}{
		{"default level", Zlib{}, bytes.Repeat([]byte("block_entity "), 64)},
		{"best speed", Zlib{Level: 1}, []byte("x")},
		{"best compression", Zlib{Level: 9}, bytes.Repeat([]byte{0, 1, 2, 3}, 1024)},
		{"invalid level falls back", Zlib{Level: 42}, []byte("fallback")},
		{"empty", Zlib{}, []byte{}},
	}
	for _, tC := range tests {
		t.Run(tC.desc, func(t *testing.T) {
			var buf bytes.Buffer
			zw := tC.z.Compressed(&buf)
			if _, err := zw.Write(tC.data); err != nil {
				t.Fatalf("Write: %v", err)
			}
			if err := zw.Close(); err != nil {
				t.Fatalf("Close: %v", err)
			}

			zr, err := tC.z.Decompressed(&buf)
			if err != nil {
				t.Fatalf("Decompressed: %v", err)
			}
			got, err := io.ReadAll(zr)
			if err != nil {
				t.Fatalf("ReadAll: %v", err)
			}
			if !bytes.Equal(got, tC.data) {
				t.Errorf("round trip changed %d bytes into %d", len(tC.data), len(got))
			}
		})
	}
}

func TestZlib_Shrinks(t *testing.T) {
	data := bytes.Repeat([]byte("aaaa"), 256)
	var buf bytes.Buffer
	zw := Zlib{}.Compressed(&buf)
	zw.Write(data)
	zw.Close()
	if buf.Len() >= len(data) {
		t.Errorf("compressed %d bytes into %d", len(data), buf.Len())
	}
}

func TestZlib_InvalidHeader(t *testing.T) {
	if _, err := (Zlib{}).Decompressed(bytes.NewReader([]byte{0x00, 0x00, 0x00})); err == nil {
		t.Error("expected an error for a stream without a zlib header")
	}
}
