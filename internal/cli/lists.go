package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lu-zhengda/termlanes/internal/app"
)

func newListsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Show the list memberships of the selected account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv()
			if err != nil {
				return err
			}
			defer env.Close()

			acct, err := env.resolveAccount(cmd.Context())
			if err != nil {
				return err
			}

			lists := acct.Lists()
			if jsonFlag {
				return printJSON(toJSONLists(lists))
			}
			if len(lists) == 0 {
				fmt.Println("No lists.")
				return nil
			}
			for _, l := range lists {
				fmt.Printf("%d\t%s\n", l.ID, l.Name)
			}
			return nil
		},
	}
	cmd.AddCommand(newListsRefreshCmd())
	return cmd
}

func newListsRefreshCmd() *cobra.Command {
	var forceFlag bool

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Fetch lists from the network and rebuild list lanes",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv()
			if err != nil {
				return err
			}
			defer env.Close()

			ctx := cmd.Context()
			acct, err := env.resolveAccount(ctx)
			if err != nil {
				return err
			}
			p, err := env.providers(acct.SocialNetType(), app.CredentialsOf(acct))
			if err != nil {
				return err
			}

			changed, err := env.svc.RefreshLists(ctx, acct, p, forceFlag)
			if err != nil {
				return err
			}

			if jsonFlag {
				return printJSON(jsonRefresh{Account: acct.ScreenName(), Changed: changed, Lists: toJSONLists(acct.Lists())})
			}
			if changed {
				fmt.Printf("Lists updated: %d lists, %d lanes\n", len(acct.Lists()), len(acct.Lanes()))
			} else {
				fmt.Println("Lists unchanged.")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&forceFlag, "force", true, "refresh even if the account does not ask for it")
	return cmd
}
