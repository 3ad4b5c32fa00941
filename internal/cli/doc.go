// Package cli provides the s3share command-line client.
//
// It offers two commands that work without the web page: "key" prints the
// storage key and the secret to share for a file, and "download" fetches a
// shared file straight from object storage after deriving its key from the
// owner's email and the shared secret. Uploading is left to the web page,
// since it needs an identity issued by the identity provider.
package cli
