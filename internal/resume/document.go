package resume

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"code.sajari.com/docconv"
)

// TextFromFile converts a resume document into plain text ready for
// Extract. Binary formats go through docconv; plain text is read as-is.
func TextFromFile(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf", ".docx", ".doc", ".rtf", ".odt":
		res, err := docconv.ConvertPath(path)
		if err != nil {
			return "", fmt.Errorf("convert document %s: %w", path, err)
		}
		return res.Body, nil
	case ".txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read text file %s: %w", path, err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unsupported document type: %s", filepath.Ext(path))
	}
}

// TextFromReader converts an in-memory document. The filename is used
// only to pick the converter by extension.
func TextFromReader(r io.Reader, filename string) (string, error) {
	if strings.ToLower(filepath.Ext(filename)) == ".txt" {
		data, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("read text document %s: %w", filename, err)
		}
		return string(data), nil
	}

	res, err := docconv.Convert(r, docconv.MimeTypeByExtension(filename), true)
	if err != nil {
		return "", fmt.Errorf("convert document %s: %w", filename, err)
	}
	return res.Body, nil
}
