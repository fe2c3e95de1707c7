package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xxxsen/davclient/codec"
)

type propsArgs struct {
	path   string
	names  []string
	set    map[string]string
	remove []string
}

func NewPropsCmd(c *Context) *cobra.Command {
	args := &propsArgs{}
	subc := &cobra.Command{
		Use:   "props",
		Short: "Query or modify resource properties",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return onRunProps(context.Background(), c, args)
		},
	}
	subc.PersistentFlags().StringVarP(&args.path, "path", "p", "", "remote resource")
	subc.PersistentFlags().StringSliceVarP(&args.names, "name", "n", nil, "property names to query, empty for allprop")
	subc.PersistentFlags().StringToStringVarP(&args.set, "set", "s", nil, "properties to set, k=v")
	subc.PersistentFlags().StringSliceVarP(&args.remove, "remove", "r", nil, "properties to remove")
	return subc
}

func onRunProps(ctx context.Context, c *Context, args *propsArgs) error {
	if args.path == "" {
		return fmt.Errorf("no path found")
	}
	if len(args.set) > 0 || len(args.remove) > 0 {
		ms, err := c.Client.PropPatch(ctx, args.path, args.set, args.remove)
		if err != nil {
			return fmt.Errorf("proppatch failed, err:%w", err)
		}
		for _, resp := range ms.Responses {
			for _, ps := range resp.Propstats {
				for name := range ps.Props {
					fmt.Printf("%s: %s\n", name, ps.Status)
				}
			}
		}
		return nil
	}
	rs, err := c.Client.PropFind(ctx, args.path, codec.DepthZero, args.names)
	if err != nil {
		return fmt.Errorf("propfind failed, err:%w", err)
	}
	for _, res := range rs {
		fmt.Printf("href: %s\n", res.Href)
		fmt.Printf("displayname: %s\n", res.DisplayName)
		fmt.Printf("content-type: %s\n", res.ContentType)
		fmt.Printf("etag: %s\n", res.Etag)
		for name, val := range res.Properties {
			fmt.Printf("%s: %s\n", name, val)
		}
	}
	return nil
}

func init() {
	register(NewPropsCmd)
}
