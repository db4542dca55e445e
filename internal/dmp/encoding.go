package dmp

import (
	"bytes"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// readDocument reads a package document as UTF-8. A UTF-8 byte order mark is
// dropped and UTF-16 documents with a byte order mark are transcoded.
func readDocument(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return decodeText(data)
}

func decodeText(data []byte) ([]byte, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	return io.ReadAll(transform.NewReader(bytes.NewReader(data), decoder))
}
