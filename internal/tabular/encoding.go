package tabular

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Encodings accepted by Decode besides "auto".
var encodings = map[string]encoding.Encoding{
	"utf-8":   unicode.UTF8,
	"utf8":    unicode.UTF8,
	"gbk":     simplifiedchinese.GBK,
	"gb18030": simplifiedchinese.GB18030,
	"big5":    traditionalchinese.Big5,
	"latin1":  charmap.ISO8859_1,
}

// EncodingNames lists the names Decode accepts.
func EncodingNames() []string {
	return []string{"auto", "utf-8", "gbk", "gb18030", "big5", "latin1"}
}

// ValidEncoding reports whether name is accepted by Decode.
func ValidEncoding(name string) bool {
	name = strings.ToLower(name)
	_, ok := encodings[name]
	return ok || name == "" || name == "auto"
}

// Decode converts data to UTF-8. With "auto" (or empty) a UTF-8 or UTF-16
// byte order mark wins, then valid UTF-8 is kept as is, and anything else
// is read as GB18030, a superset of GBK.
func Decode(data []byte, name string) ([]byte, error) {
	name = strings.ToLower(name)
	if name == "" || name == "auto" {
		out, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), data)
		if err == nil && utf8.Valid(out) {
			return out, nil
		}
		return decodeWith(simplifiedchinese.GB18030, data)
	}

	enc, ok := encodings[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
	if enc == unicode.UTF8 {
		enc = unicode.UTF8BOM
	}
	return decodeWith(enc, data)
}

func decodeWith(enc encoding.Encoding, data []byte) ([]byte, error) {
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding: %v", ErrUnparseable, err)
	}
	return out, nil
}
