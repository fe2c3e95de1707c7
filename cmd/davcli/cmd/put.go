package cmd

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type putArgs struct {
	files []string
	dst   string
}

func NewPutCmd(c *Context) *cobra.Command {
	args := &putArgs{}
	subc := &cobra.Command{
		Use:   "put",
		Short: "Upload local files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return onRunPut(context.Background(), c, args)
		},
	}
	subc.PersistentFlags().StringSliceVarP(&args.files, "file", "f", nil, "local files to upload")
	subc.PersistentFlags().StringVarP(&args.dst, "dst", "d", "/", "remote collection")
	return subc
}

func onRunPut(ctx context.Context, c *Context, args *putArgs) error {
	if len(args.files) == 0 {
		return fmt.Errorf("no upload file found")
	}
	eg, subctx := errgroup.WithContext(ctx)
	eg.SetLimit(c.Config.Thread)
	for _, file := range args.files {
		file := file
		eg.Go(func() error {
			start := time.Now()
			ref := path.Join(args.dst, path.Base(file))
			var transferred int64
			if err := c.Client.PutFile(subctx, file, ref, func(done int64, total int64) {
				transferred = done
			}); err != nil {
				return fmt.Errorf("upload file failed, file:%s, err:%w", file, err)
			}
			logutil.GetLogger(subctx).Info("upload finish", zap.String("file", file),
				zap.String("size", humanize.IBytes(uint64(transferred))),
				zap.Duration("cost", time.Since(start)))
			return nil
		})
	}
	return eg.Wait()
}

func init() {
	register(NewPutCmd)
}
