package cmd

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

type lsArgs struct {
	path string
}

func NewLsCmd(c *Context) *cobra.Command {
	args := &lsArgs{}
	subc := &cobra.Command{
		Use:   "ls",
		Short: "List a remote collection",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return onRunLs(context.Background(), c, args)
		},
	}
	subc.PersistentFlags().StringVarP(&args.path, "path", "p", "/", "remote path to list")
	return subc
}

func onRunLs(ctx context.Context, c *Context, args *lsArgs) error {
	items, err := c.Client.List(ctx, args.path)
	if err != nil {
		return fmt.Errorf("list failed, err:%w", err)
	}
	for _, item := range items {
		kind := "-"
		size := humanize.IBytes(uint64(max64(item.ContentLength, 0)))
		if item.IsDir() {
			kind = "d"
			size = "-"
		}
		fmt.Printf("%s %10s %s %s\n", kind, size, item.Mtime.Format("2006-01-02 15:04:05"), item.Href)
	}
	return nil
}

func max64(v int64, min int64) int64 {
	if v < min {
		return min
	}
	return v
}

func init() {
	register(NewLsCmd)
}
