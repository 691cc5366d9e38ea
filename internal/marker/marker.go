package marker

import "regexp"

// Shape is the textual rendering of a marker.
type Shape int

const (
	// ShapeString is a single-line inline marker.
	ShapeString Shape = iota
	// ShapeBlock is an indented multi-line marker introduced by a `>` line.
	ShapeBlock
)

// Direction tags whether a marker's payload is ciphertext or plaintext.
type Direction int

const (
	// Encrypted markers carry base64 envelope ciphertext: ENC[...].
	Encrypted Direction = iota
	// Decrypted markers carry plaintext pending re-encryption: ENC![...]!ENC.
	Decrypted
)

// Marker is one located secret value inside a document.
type Marker struct {
	Shape     Shape
	Direction Direction
	Payload   string // text between the delimiters
	Indent    string // leading whitespace of block continuation lines
	Start     int    // byte offset of the marker in the document
	End       int    // byte offset just past the marker
}

// Segment is either a literal run of document text or a marker. Exactly one
// field is set.
type Segment struct {
	Literal string
	Marker  *Marker
}

// The four marker patterns. Block patterns begin at the `>` that ends the
// introducing line and capture the constant indent of the first continuation
// line; the payload class admits whitespace so ciphertext may span lines.
// Decrypted string payloads never span lines (`.` excludes newline), while
// decrypted block payloads may ((?s)).
var (
	encryptedStringRe = regexp.MustCompile(`ENC\[([A-Za-z0-9+/=]+)\]`)
	encryptedBlockRe  = regexp.MustCompile(`>\n([ \t]+)ENC\[([A-Za-z0-9+/=\s]*)\]`)
	decryptedStringRe = regexp.MustCompile(`ENC!\[(.*?)\]!ENC`)
	decryptedBlockRe  = regexp.MustCompile(`>\n([ \t]+)ENC!\[((?s:.*?))\]!ENC`)
)

func pattern(dir Direction, shape Shape) *regexp.Regexp {
	switch {
	case dir == Encrypted && shape == ShapeString:
		return encryptedStringRe
	case dir == Encrypted && shape == ShapeBlock:
		return encryptedBlockRe
	case dir == Decrypted && shape == ShapeString:
		return decryptedStringRe
	default:
		return decryptedBlockRe
	}
}

// Scan splits doc into an ordered sequence of literal and marker segments
// for one direction and shape. Segments cover the document completely, with
// no gaps, overlaps, or duplication; concatenating literal segments and the
// original marker spans reproduces doc byte for byte.
//
// Callers that apply both shapes must scan blocks before strings: a block's
// payload can itself satisfy the string pattern, and must not be
// reconsidered once consumed as a block.
func Scan(doc string, dir Direction, shape Shape) []Segment {
	re := pattern(dir, shape)
	matches := re.FindAllStringSubmatchIndex(doc, -1)

	segments := make([]Segment, 0, 2*len(matches)+1)
	last := 0
	for _, m := range matches {
		if m[0] > last {
			segments = append(segments, Segment{Literal: doc[last:m[0]]})
		}
		mk := &Marker{
			Shape:     shape,
			Direction: dir,
			Start:     m[0],
			End:       m[1],
		}
		if shape == ShapeBlock {
			mk.Indent = doc[m[2]:m[3]]
			mk.Payload = doc[m[4]:m[5]]
		} else {
			mk.Payload = doc[m[2]:m[3]]
		}
		segments = append(segments, Segment{Marker: mk})
		last = m[1]
	}
	if last < len(doc) {
		segments = append(segments, Segment{Literal: doc[last:]})
	}
	return segments
}
