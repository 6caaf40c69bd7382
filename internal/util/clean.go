package util

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"
)

const maxBinaryCheckBytes = 512

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// IsLikelyBinary reports whether the first bytes of path contain a NUL byte.
func IsLikelyBinary(path string) (bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer file.Close()

	buffer := make([]byte, maxBinaryCheckBytes)
	n, err := file.Read(buffer)
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}

	return bytes.Contains(buffer[:n], []byte{0}), nil
}

// CleanCSVBytes drops a leading BOM (spreadsheet exports add one, and it would
// otherwise end up glued to the first header name) and replaces invalid UTF-8.
func CleanCSVBytes(data []byte, src string) []byte {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		log.WithField("source", src).Warn("invalid UTF-8 in CSV, replacing invalid chars")
		data = bytes.ToValidUTF8(data, []byte(string(utf8.RuneError)))
	}
	return data
}

// CleanHeader trims whitespace and a stray BOM from a single header cell.
func CleanHeader(h string) string {
	return strings.TrimSpace(strings.TrimPrefix(h, string(utf8BOM)))
}
