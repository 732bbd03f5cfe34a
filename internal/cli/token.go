package cli

import (
	"VoiceBot/internal/entity"
	jwtPkg "VoiceBot/pkg/jwt"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newTokenCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign an admin access token for the /api/v1/admin routes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := cmd.Flags().GetString("id")
			ttl, _ := cmd.Flags().GetDuration("ttl")

			secret, _ := cmd.Flags().GetString("secret")
			if secret == "" {
				secret = a.v.GetString("jwt_secret")
			}
			if secret == "" {
				return errors.New("no signing secret: set JWT_ACCESS_TOKEN_SECRET or pass --secret")
			}

			token, expiresAt, err := jwtPkg.Sign(secret, map[string]interface{}{
				"id":   id,
				"role": entity.RoleAdmin,
			}, ttl)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, token)
			fmt.Fprintf(out, "expires at %s\n", time.Unix(expiresAt, 0).UTC().Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().String("id", "", "operator id embedded in the token")
	cmd.Flags().Duration("ttl", 24*time.Hour, "token lifetime")
	cmd.Flags().String("secret", "", "signing secret (defaults to JWT_ACCESS_TOKEN_SECRET)")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}
