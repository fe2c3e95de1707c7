package cmd

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/retry"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xxxsen/davclient/client"
)

type getArgs struct {
	refs []string
	out  string
}

func NewGetCmd(c *Context) *cobra.Command {
	args := &getArgs{}
	subc := &cobra.Command{
		Use:   "get",
		Short: "Download remote files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return onRunGet(context.Background(), c, args)
		},
	}
	subc.PersistentFlags().StringSliceVarP(&args.refs, "remote", "r", nil, "remote paths to download")
	subc.PersistentFlags().StringVarP(&args.out, "out", "o", ".", "local output directory")
	return subc
}

func onRunGet(ctx context.Context, c *Context, args *getArgs) error {
	if len(args.refs) == 0 {
		return fmt.Errorf("no remote path found")
	}
	eg, subctx := errgroup.WithContext(ctx)
	eg.SetLimit(c.Config.Thread)
	for _, ref := range args.refs {
		ref := ref
		eg.Go(func() error {
			return downloadOne(subctx, c.Client, ref, path.Join(args.out, path.Base(ref)))
		})
	}
	return eg.Wait()
}

func downloadOne(ctx context.Context, cli *client.Client, ref string, dst string) error {
	start := time.Now()
	var transferred int64
	if err := retry.RetryDo(ctx, 3, 2*time.Second, func(ctx context.Context) error {
		err := cli.GetFile(ctx, ref, dst, func(done int64, total int64) {
			transferred = done
		})
		if err != nil {
			logutil.GetLogger(ctx).Error("download failed, wait retry", zap.String("ref", ref), zap.Error(err))
		}
		return err
	}); err != nil {
		return fmt.Errorf("download failed, ref:%s, err:%w", ref, err)
	}
	cost := time.Since(start)
	speed := "-"
	if cost > time.Millisecond {
		speed = humanize.IBytes(uint64(float64(transferred)*1000/float64(int64(cost/time.Millisecond)))) + "/s"
	}
	logutil.GetLogger(ctx).Info("download finish", zap.String("ref", ref),
		zap.String("size", humanize.IBytes(uint64(transferred))),
		zap.Duration("cost", cost), zap.String("speed", speed))
	return nil
}

func init() {
	register(NewGetCmd)
}
