// Package marker recognizes enveil's four marker shapes inside otherwise
// opaque document text.
//
// Encrypted values appear as ENC[<base64>] inline, or as an indented block
// introduced by a line ending in `>`. Decrypted values pending
// re-encryption use ENC![<text>]!ENC in the same two shapes. Scan produces
// an ordered segment sequence covering the whole document, so transforms
// can rewrite markers while passing every other byte through untouched.
package marker
