package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func NewMkdirCmd(c *Context) *cobra.Command {
	var p string
	subc := &cobra.Command{
		Use:   "mkdir",
		Short: "Create a remote collection",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if p == "" {
				return fmt.Errorf("no path found")
			}
			return c.Client.Mkcol(context.Background(), p)
		},
	}
	subc.PersistentFlags().StringVarP(&p, "path", "p", "", "remote collection to create")
	return subc
}

func NewRmCmd(c *Context) *cobra.Command {
	var p string
	subc := &cobra.Command{
		Use:   "rm",
		Short: "Delete a remote resource",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if p == "" {
				return fmt.Errorf("no path found")
			}
			return c.Client.Delete(context.Background(), p, "")
		},
	}
	subc.PersistentFlags().StringVarP(&p, "path", "p", "", "remote resource to delete")
	return subc
}

func NewMvCmd(c *Context) *cobra.Command {
	var src, dst string
	var overwrite bool
	subc := &cobra.Command{
		Use:   "mv",
		Short: "Move a remote resource",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if src == "" || dst == "" {
				return fmt.Errorf("src/dst required")
			}
			return c.Client.Move(context.Background(), src, dst, overwrite)
		},
	}
	subc.PersistentFlags().StringVarP(&src, "src", "s", "", "source path")
	subc.PersistentFlags().StringVarP(&dst, "dst", "d", "", "destination path")
	subc.PersistentFlags().BoolVarP(&overwrite, "overwrite", "w", false, "overwrite existing destination")
	return subc
}

func NewCpCmd(c *Context) *cobra.Command {
	var src, dst string
	var overwrite bool
	subc := &cobra.Command{
		Use:   "cp",
		Short: "Copy a remote resource",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if src == "" || dst == "" {
				return fmt.Errorf("src/dst required")
			}
			return c.Client.Copy(context.Background(), src, dst, overwrite)
		},
	}
	subc.PersistentFlags().StringVarP(&src, "src", "s", "", "source path")
	subc.PersistentFlags().StringVarP(&dst, "dst", "d", "", "destination path")
	subc.PersistentFlags().BoolVarP(&overwrite, "overwrite", "w", false, "overwrite existing destination")
	return subc
}

func init() {
	register(NewMkdirCmd)
	register(NewRmCmd)
	register(NewMvCmd)
	register(NewCpCmd)
}
