// Package sharekey derives the storage key a shared file lives under.
//
// The key is built from the owner's email and a secret chosen at upload
// time. Anyone who can reproduce the same email and secret can compute the
// key and fetch the object: possession of both is the whole access check.
// The email encoding is plain base64 and is trivially reversible; it hides
// nothing and must stay reversible, because the download side recomputes it
// from plaintext input.
package sharekey

import (
	"encoding/base64"
	"strings"
)

// Key is an object storage key.
type Key string

func (k Key) String() string { return string(k) }

// EncodeLabel encodes an identity label (an email) for use in a key.
func EncodeLabel(label string) string {
	return base64.StdEncoding.EncodeToString([]byte(label))
}

// FileExtension returns the part of filename after the last dot, or "" when
// the name has no dot.
func FileExtension(filename string) string {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return ""
	}
	return filename[i+1:]
}

// DeriveUploadKey builds the key an uploader's file is stored under.
// Inputs are not validated: an empty label still produces a key.
func DeriveUploadKey(identityLabel, secret, fileExtension string) Key {
	return Key(EncodeLabel(identityLabel) + secret + "." + fileExtension)
}

// ComposeSecret joins secret and extension into the value handed to the
// uploader for sharing.
func ComposeSecret(secret, fileExtension string) string {
	return secret + "-" + fileExtension
}

// SplitComposedSecret returns the first and second hyphen-separated parts
// of a composed secret; anything after a second hyphen is dropped. A secret
// that itself contains a hyphen therefore does not survive the round trip:
// "my-secret-txt" splits into "my" and "secret". Without a hyphen the
// extension is "".
func SplitComposedSecret(composed string) (secret, fileExtension string) {
	parts := strings.Split(composed, "-")
	secret = parts[0]
	if len(parts) > 1 {
		fileExtension = parts[1]
	}
	return secret, fileExtension
}

// DeriveDownloadKey computes the key a requester asks for from the owner
// email they typed and the composed secret they were given.
func DeriveDownloadKey(email, composedSecret string) Key {
	secret, ext := SplitComposedSecret(composedSecret)
	return DeriveUploadKey(email, secret, ext)
}
