package cmd

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func NewLockCmd(c *Context) *cobra.Command {
	var p string
	var timeout int64
	subc := &cobra.Command{
		Use:   "lock",
		Short: "Acquire an exclusive write lock",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if p == "" {
				return fmt.Errorf("no path found")
			}
			owner := "urn:uuid:" + uuid.NewString()
			info, err := c.Client.Lock(context.Background(), p, owner, timeout)
			if err != nil {
				return fmt.Errorf("lock failed, err:%w", err)
			}
			fmt.Printf("token: %s\ntimeout: %s\n", info.Token, info.Timeout)
			return nil
		},
	}
	subc.PersistentFlags().StringVarP(&p, "path", "p", "", "remote resource to lock")
	subc.PersistentFlags().Int64VarP(&timeout, "timeout", "t", 300, "lock timeout seconds")
	return subc
}

func NewUnlockCmd(c *Context) *cobra.Command {
	var p, token string
	subc := &cobra.Command{
		Use:   "unlock",
		Short: "Release a lock",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if p == "" || token == "" {
				return fmt.Errorf("path/token required")
			}
			return c.Client.Unlock(context.Background(), p, token)
		},
	}
	subc.PersistentFlags().StringVarP(&p, "path", "p", "", "remote resource to unlock")
	subc.PersistentFlags().StringVarP(&token, "token", "t", "", "lock token")
	return subc
}

func init() {
	register(NewLockCmd)
	register(NewUnlockCmd)
}
