package cmd

import (
	"fmt"

	pkgapp "github.com/haierkeys/fast-note-folder-service/pkg/app"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// newTokenCommand mints a user token signed with the configured key.
// Tokens are bound to the machine id, so it only works on the host that serves them.
// newTokenCommand 为指定 uid 签发用户 Token（开发调试用）
func newTokenCommand() *cobra.Command {
	var (
		configPath string
		uid        int64
		nickname   string
	)

	cmd := &cobra.Command{
		Use:   "token --uid <uid>",
		Short: "Mint a user token for a uid // 为用户签发 Token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if uid <= 0 {
				return errors.New("uid must be positive")
			}
			cfg, err := loadCLIConfig(configPath)
			if err != nil {
				return err
			}
			token, err := pkgapp.NewTokenManager(cfg.GetTokenConfig()).Generate(uid, nickname, "127.0.0.1")
			if err != nil {
				return errors.Wrap(err, "generate token failed")
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&configPath, "config", "c", "", "config file")
	fs.Int64VarP(&uid, "uid", "u", 0, "user id")
	fs.StringVarP(&nickname, "nickname", "n", "", "nickname stored in the token")

	return cmd
}

func init() {
	rootCmd.AddCommand(newTokenCommand())
}
