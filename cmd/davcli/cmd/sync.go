package cmd

import (
	"context"
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xxxsen/davclient/entity"
)

type syncArgs struct {
	remote string
	local  string
}

func NewSyncCmd(c *Context) *cobra.Command {
	args := &syncArgs{}
	subc := &cobra.Command{
		Use:   "sync",
		Short: "Mirror a remote collection to local",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return onRunSync(context.Background(), c, args)
		},
	}
	subc.PersistentFlags().StringVarP(&args.remote, "remote", "r", "/", "remote collection")
	subc.PersistentFlags().StringVarP(&args.local, "local", "l", ".", "local directory")
	return subc
}

func onRunSync(ctx context.Context, c *Context, args *syncArgs) error {
	eg, subctx := errgroup.WithContext(ctx)
	eg.SetLimit(c.Config.Thread)
	if err := walkRemote(subctx, c, args.remote, func(res *entity.Resource) {
		rel := strings.TrimPrefix(res.Href, args.remote)
		dst := path.Join(args.local, rel)
		if res.IsDir() {
			return
		}
		if !needDownload(res, dst) {
			return
		}
		eg.Go(func() error {
			return downloadOne(subctx, c.Client, res.Href, dst)
		})
	}); err != nil {
		return err
	}
	return eg.Wait()
}

func walkRemote(ctx context.Context, c *Context, ref string, cb func(res *entity.Resource)) error {
	items, err := c.Client.List(ctx, ref)
	if err != nil {
		return fmt.Errorf("list remote failed, ref:%s, err:%w", ref, err)
	}
	for _, item := range items {
		cb(item)
		if item.IsDir() {
			if err := walkRemote(ctx, c, item.Href, cb); err != nil {
				return err
			}
		}
	}
	return nil
}

// needDownload 本地缺失/大小不一致/远端更新则拉取
func needDownload(res *entity.Resource, dst string) bool {
	info, err := os.Stat(dst)
	if err != nil {
		return true
	}
	if res.ContentLength >= 0 && info.Size() != res.ContentLength {
		return true
	}
	if !res.Mtime.IsZero() && res.Mtime.After(info.ModTime().Add(time.Second)) {
		return true
	}
	logutil.GetLogger(context.Background()).Debug("skip up-to-date file", zap.String("dst", dst))
	return false
}

func init() {
	register(NewSyncCmd)
}
