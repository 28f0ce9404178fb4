package cmd

import (
	"fmt"

	internalApp "github.com/haierkeys/fast-note-folder-service/internal/app"
	"github.com/haierkeys/fast-note-folder-service/pkg/fileurl"
	"github.com/haierkeys/fast-note-folder-service/pkg/idcodec"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// loadCLIConfig loads the config used by the helper commands.
// Unlike run it never writes a default file, a missing config means built-in defaults.
// loadCLIConfig 加载辅助命令使用的配置，找不到配置文件时使用默认值
func loadCLIConfig(explicit string) (*internalApp.AppConfig, error) {
	path := explicit
	if path == "" {
		for _, p := range []string{"config/config-dev.yaml", "config.yaml", defaultConfigPath} {
			if fileurl.IsExist(p) {
				path = p
				break
			}
		}
	}
	if path == "" {
		return internalApp.ParseConfig(nil)
	}
	cfg, _, err := internalApp.LoadConfig(path)
	return cfg, err
}

func newCodecFromConfig(configPath string) (idcodec.Codec, error) {
	cfg, err := loadCLIConfig(configPath)
	if err != nil {
		return nil, err
	}
	return idcodec.New(cfg.GetCodecConfig())
}

func newIDCommand() *cobra.Command {
	var configPath string

	idCmd := &cobra.Command{
		Use:   "id",
		Short: "Translate between database keys and opaque ids // 数据库主键与对外 ID 互转",
	}
	idCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file")

	idCmd.AddCommand(&cobra.Command{
		Use:   "encode <uuid>...",
		Short: "Encode database keys into opaque ids",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			codec, err := newCodecFromConfig(configPath)
			if err != nil {
				return err
			}
			for _, arg := range args {
				id, err := uuid.Parse(arg)
				if err != nil {
					return errors.Wrapf(err, "invalid key %q", arg)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", arg, codec.Encode(id))
			}
			return nil
		},
	})

	idCmd.AddCommand(&cobra.Command{
		Use:   "decode <id>...",
		Short: "Decode opaque ids into database keys",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			codec, err := newCodecFromConfig(configPath)
			if err != nil {
				return err
			}
			for _, arg := range args {
				id, err := codec.Decode(arg)
				if err != nil {
					return errors.Wrapf(err, "invalid id %q", arg)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", arg, id)
			}
			return nil
		},
	})

	return idCmd
}

func init() {
	rootCmd.AddCommand(newIDCommand())
}
