// Command fcm clusters a delimited numeric dataset with fuzzy c-means.
//
// Usage:
//
//	fcm [flags] <input>
//
// The input is a local path or an s3:// or minio:// URI; files ending in
// .zst, .lz4 or .gz are decompressed on the fly. Three outputs are written:
// the dataset with a label column (--output), the final centers and the
// membership matrix. Run fcm -h for the full flag list.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/hupe1980/fcmeans/blobstore"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stderr, os.LookupEnv, blobstore.NewLocalStore("")); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "fcm: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// run executes one clustering job. Log output goes to stderr; plain paths
// are resolved in local.
func run(ctx context.Context, args []string, stderr io.Writer, lookupEnv func(string) (string, bool), local blobstore.BlobStore) error {
	cfg, err := loadConfig(args, stderr, lookupEnv)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Log, stderr)
	if err != nil {
		return err
	}

	j := &job{
		cfg:    cfg,
		logger: logger,
		stores: newStoreResolver(local),
	}
	return j.run(ctx)
}
