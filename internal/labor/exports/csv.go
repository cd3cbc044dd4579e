// Package exports writes report data as CSV for spreadsheet tools.
package exports

import (
	"encoding/csv"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"equipment-backend/internal/platform/apierr"
)

const DefaultCharset = "utf-8"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Charset is an output encoding for CSV files.
type Charset struct {
	Name string
	enc  encoding.Encoding // nil = UTF-8
}

var charsets = map[string]Charset{
	"utf-8":        {Name: "utf-8"},
	"windows-1252": {Name: "windows-1252", enc: charmap.Windows1252},
	"iso-8859-1":   {Name: "iso-8859-1", enc: charmap.ISO8859_1},
	// Excel (日本語版) 向け
	"shift_jis": {Name: "shift_jis", enc: japanese.ShiftJIS},
}

// LookupCharset resolves a charset name. An empty name means UTF-8.
func LookupCharset(name string) (Charset, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = DefaultCharset
	}
	cs, ok := charsets[name]
	if !ok {
		return Charset{}, apierr.ErrInvalid("unsupported charset " + name)
	}
	return cs, nil
}

func (cs Charset) ContentType() string { return "text/csv; charset=" + cs.Name }

// WriteCSV writes header and rows to w. UTF-8 output starts with a BOM so
// Excel detects the encoding; characters a legacy charset cannot represent
// are replaced.
func WriteCSV(w io.Writer, cs Charset, header []string, rows [][]string) error {
	var out io.Writer = w
	var tw io.WriteCloser
	if cs.enc == nil {
		if _, err := w.Write(utf8BOM); err != nil {
			return err
		}
	} else {
		tw = transform.NewWriter(w, encoding.ReplaceUnsupported(cs.enc.NewEncoder()))
		out = tw
	}

	cw := csv.NewWriter(out)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	if tw != nil {
		return tw.Close()
	}
	return nil
}
