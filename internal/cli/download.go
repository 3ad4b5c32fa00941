package cli

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/dmitrijs2005/s3share/internal/filex"
	"github.com/dmitrijs2005/s3share/internal/flagx"
	"github.com/dmitrijs2005/s3share/internal/share"
)

var downloadFlags = []string{"-email", "-secret", "-out"}

// download fetches the file shared by -email under -secret and writes it to
// -out, or to the suggested file name in the working directory.
func (a *App) download(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("download", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	email := fs.String("email", "", "file owner's email")
	secret := fs.String("secret", "", "secret to share (prompted when omitted)")
	out := fs.String("out", "", "output path")

	if err := fs.Parse(flagx.FilterArgs(args, downloadFlags)); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if *email == "" {
		fmt.Fprintln(a.out, "download requires -email")
		return ErrUsage
	}

	if *secret == "" {
		s, err := GetSecret(a.out)
		if err != nil {
			return err
		}
		*secret = s
	}

	svc, err := a.service(ctx)
	if err != nil {
		return err
	}

	dl, err := svc.Download(ctx, *email, *secret)
	if err != nil {
		fmt.Fprintln(a.out, share.Message(err))
		return err
	}

	path := *out
	if path == "" {
		path = dl.Filename
	}
	if err := filex.WriteFile(path, dl.Object.Body); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Saved %s (%s)\n", path, humanize.IBytes(uint64(len(dl.Object.Body))))
	return nil
}
