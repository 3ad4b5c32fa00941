package cli

import (
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/s3share/internal/common"
	"github.com/dmitrijs2005/s3share/internal/flagx"
	"github.com/dmitrijs2005/s3share/internal/sharekey"
)

var keyFlags = []string{"-email", "-secret", "-file"}

// key prints the storage key an upload of -file by -email would get, and
// the secret the uploader hands out.
func (a *App) key(args []string) error {
	fs := flag.NewFlagSet("key", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	email := fs.String("email", "", "uploader email")
	secret := fs.String("secret", common.DefaultSecret, "secret key")
	file := fs.String("file", "", "file name")

	if err := fs.Parse(flagx.FilterArgs(args, keyFlags)); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if *email == "" || *file == "" {
		fmt.Fprintln(a.out, "key requires -email and -file")
		return ErrUsage
	}

	ext := sharekey.FileExtension(*file)
	fmt.Fprintf(a.out, "Key: %s\n", sharekey.DeriveUploadKey(*email, *secret, ext))
	fmt.Fprintf(a.out, "Secret to share: %s\n", sharekey.ComposeSecret(*secret, ext))
	return nil
}
