package render

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// WriteTXT writes rendered grid rows, trimming trailing blanks.
func WriteTXT(w io.Writer, lines []string) error {
	bw := bufio.NewWriter(w)
	for _, line := range lines {
		bw.WriteString(strings.TrimRight(line, " "))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// ExportTXT writes rendered grid rows to filename.
func ExportTXT(filename string, lines []string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteTXT(file, lines)
}
