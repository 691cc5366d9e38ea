package marker

import "strings"

// RenderEncryptedString renders ciphertext as an inline marker.
func RenderEncryptedString(b64 string) string {
	return "ENC[" + b64 + "]"
}

// RenderDecryptedString renders plaintext as an inline pending-encryption
// marker. The payload must not contain newlines; multi-line values belong
// in block shape.
func RenderDecryptedString(plain string) string {
	return "ENC![" + plain + "]!ENC"
}

// RenderEncryptedBlock re-flows ciphertext onto continuation lines of at
// most width characters, each prefixed with indent. The delimiters flow
// with the base64 and may span lines. The rendered text begins with the `>`
// that ends the introducing line.
func RenderEncryptedBlock(b64, indent string, width int) string {
	full := "ENC[" + b64 + "]"
	var b strings.Builder
	b.WriteString(">")
	for len(full) > 0 {
		n := width
		if n > len(full) {
			n = len(full)
		}
		b.WriteString("\n")
		b.WriteString(indent)
		b.WriteString(full[:n])
		full = full[n:]
	}
	return b.String()
}

// RenderDecryptedBlock renders plaintext as a block pending-encryption
// marker. Every line of the marker, including continuation lines of
// multi-line plaintext, is prefixed with indent.
func RenderDecryptedBlock(plain, indent string) string {
	full := "ENC![" + plain + "]!ENC"
	var b strings.Builder
	b.WriteString(">")
	for _, line := range strings.Split(full, "\n") {
		b.WriteString("\n")
		b.WriteString(indent)
		b.WriteString(line)
	}
	return b.String()
}

// UnindentPayload removes the block indent that RenderDecryptedBlock added
// to continuation lines, recovering the original multi-line plaintext.
func UnindentPayload(payload, indent string) string {
	if indent == "" {
		return payload
	}
	return strings.ReplaceAll(payload, "\n"+indent, "\n")
}

// StripWhitespace removes all whitespace from a block ciphertext payload,
// collapsing continuation lines back into one base64 run.
func StripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, s)
}
