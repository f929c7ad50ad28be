package utils

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"strings"
)

// DetectFileContentType sniffs the content type of the file from its first 512 bytes.
func DetectFileContentType(fname string) (string, error) {
	file, err := os.Open(fname)
	if err != nil {
		return "", err
	}
	defer file.Close()

	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil {
		return "", fmt.Errorf("could not read %s: %w", fname, err)
	}
	return sniffContentType(buffer[:n]), nil
}

// tiffSignatures are the little and big endian TIFF headers,
// which http.DetectContentType does not know about.
var tiffSignatures = [][]byte{
	[]byte("II*\x00"),
	[]byte("MM\x00*"),
}

func sniffContentType(data []byte) string {
	for _, sig := range tiffSignatures {
		if bytes.HasPrefix(data, sig) {
			return "image/tiff"
		}
	}
	return http.DetectContentType(data)
}

// IsImage reports whether the content type denotes an image.
func IsImage(contentType string) bool {
	return strings.HasPrefix(contentType, "image/")
}
