package cmd

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/xxxsen/davclient/client"
	"github.com/xxxsen/davclient/cmd/davcli/config"

	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
)

const (
	defaultConfigFileEnv = "DAVCLI_CONFIG"
)

var cmds []CreateFunc

type Context struct {
	Client *client.Client
	Config *config.Config
}

type CreateFunc func(ctx *Context) *cobra.Command

func register(cr CreateFunc) {
	cmds = append(cmds, cr)
}

func initContext(ctx *Context, cfgs []string) error {
	var c *config.Config
	var err error
	for _, cfg := range cfgs {
		c, err = config.Parse(cfg)
		if err != nil {
			continue
		}
		break
	}
	if c == nil {
		return fmt.Errorf("no valid config file found, last err:%w", err)
	}
	ctx.Config = c
	logger.Init("", c.LogLevel, 0, 0, 0, true)
	opts := []client.Option{client.WithBaseUrl(c.Url)}
	if c.Timeout > 0 {
		opts = append(opts, client.WithHTTPClient(&http.Client{
			Timeout: time.Duration(c.Timeout) * time.Second,
			Transport: &http.Transport{
				DisableCompression: true,
			},
		}))
	}
	cli, err := client.New(opts...)
	if err != nil {
		return err
	}
	if c.Domain != "" {
		cli.SetDomainAuth(c.User, c.Pass, c.Domain, c.Workstation, c.Preemptive)
	} else if c.User != "" {
		cli.SetBasicAuth(c.User, c.Pass, c.Preemptive)
	}
	ctx.Client = cli
	return nil
}

func NewRoot() *cobra.Command {
	var configFile string
	ctx := &Context{}
	var rootCmd = &cobra.Command{
		Use:   "davcli",
		Short: "webdav client cli",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfgs := []string{configFile}
			if env := os.Getenv(defaultConfigFileEnv); env != "" {
				cfgs = append(cfgs, env)
			}
			return initContext(ctx, cfgs)
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./davcli.json", "config file path")
	for _, cr := range cmds {
		rootCmd.AddCommand(cr(ctx))
	}
	return rootCmd
}
