package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lu-zhengda/termlanes/internal/account"
	"github.com/lu-zhengda/termlanes/internal/domain"
	"github.com/lu-zhengda/termlanes/internal/provider/appdotnet"
	"github.com/lu-zhengda/termlanes/internal/provider/twitter"
	"github.com/lu-zhengda/termlanes/internal/store"
)

func newAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage Twitter and App.net accounts",
	}
	cmd.AddCommand(newAccountAddCmd())
	cmd.AddCommand(newAccountListCmd())
	cmd.AddCommand(newAccountShowCmd())
	cmd.AddCommand(newAccountUseCmd())
	cmd.AddCommand(newAccountRemoveCmd())
	return cmd
}

func newAccountAddCmd() *cobra.Command {
	var networkFlag, tokenFlag, secretFlag string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an account via OAuth",
		RunE: func(cmd *cobra.Command, args []string) error {
			network, err := parseNetwork(networkFlag)
			if err != nil {
				return err
			}

			env, err := openEnv()
			if err != nil {
				return err
			}
			defer env.Close()

			ctx := cmd.Context()
			creds := store.Credentials{Token: tokenFlag, Secret: secretFlag}
			if creds.Token == "" {
				switch network {
				case domain.Twitter:
					fmt.Println("Starting Twitter authorization...")
					creds, err = twitter.Authorize(twitterConfig(env.cfg), promptPIN)
				case domain.Appdotnet:
					fmt.Println("Starting App.net OAuth flow...")
					creds, err = appdotnet.Authenticate(ctx, appdotnetOAuthConfig(env.cfg), func(url string) {
						fmt.Printf("\nOpen this URL in your browser to authorize termlanes:\n\n  %s\n\nWaiting for authorization...\n", url)
					})
				}
				if err != nil {
					return fmt.Errorf("failed to authenticate: %w", err)
				}
			}

			p, err := env.providers(network, creds)
			if err != nil {
				return err
			}
			acct, err := env.svc.Add(ctx, p, creds)
			if err != nil {
				return fmt.Errorf("failed to add account: %w", err)
			}

			if _, err := env.svc.RefreshLists(ctx, acct, p, false); err != nil {
				// Non-fatal: lists are refreshed again on next start.
				logrus.WithError(err).Warn("could not fetch lists")
			}

			if jsonFlag {
				return printJSON(jsonAction{OK: true, Action: "add", Account: acct.ScreenName()})
			}

			fmt.Printf("Account added: @%s (%s)\n", acct.ScreenName(), network.DisplayName())
			return nil
		},
	}

	cmd.Flags().StringVar(&networkFlag, "network", "twitter", "social network (twitter or appdotnet)")
	cmd.Flags().StringVar(&tokenFlag, "token", "", "existing OAuth access token (skips authorization)")
	cmd.Flags().StringVar(&secretFlag, "secret", "", "existing OAuth access token secret (Twitter only)")
	return cmd
}

// promptPIN shows the Twitter authorization URL and reads the PIN from stdin.
func promptPIN(authURL string) (string, error) {
	fmt.Printf("\nOpen this URL in your browser to authorize termlanes:\n\n  %s\n\nEnter the PIN shown by Twitter: ", authURL)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	pin := strings.TrimSpace(line)
	if pin == "" {
		return "", fmt.Errorf("empty PIN")
	}
	return pin, nil
}

func newAccountListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv()
			if err != nil {
				return err
			}
			defer env.Close()

			ctx := cmd.Context()
			accounts, err := env.svc.LoadAll(ctx)
			if err != nil {
				return err
			}
			var activeID int64
			if active, err := env.svc.Active(ctx); err == nil {
				activeID = active.ID()
			}

			if jsonFlag {
				return printJSON(toJSONAccounts(accounts, activeID))
			}

			if len(accounts) == 0 {
				fmt.Println("No accounts configured. Run 'termlanes account add' to add one.")
				return nil
			}

			tbl := newTable(os.Stdout, "", "ID", "SCREEN NAME", "NETWORK", "LANES", "LISTS")
			for _, a := range accounts {
				marker := ""
				if a.ID() == activeID {
					marker = "*"
				}
				tbl.row(
					marker,
					strconv.FormatInt(a.ID(), 10),
					"@"+a.ScreenName(),
					a.SocialNetType().DisplayName(),
					fmt.Sprintf("%d/%d", a.DisplayedLaneCount(), len(a.Lanes())),
					strconv.Itoa(len(a.Lists())),
				)
			}
			return tbl.flush()
		},
	}
}

func newAccountShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id or screen name]",
		Short: "Show an account (defaults to the selected account)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv()
			if err != nil {
				return err
			}
			defer env.Close()

			if len(args) == 1 {
				accountFlag = args[0]
			}
			acct, err := env.resolveAccount(cmd.Context())
			if err != nil {
				return err
			}

			if jsonFlag {
				return printJSON(toJSONAccountDetail(acct))
			}
			printAccount(acct)
			return nil
		},
	}
}

func printAccount(acct *account.Account) {
	fmt.Printf("@%s (%s, id %d)\n", acct.ScreenName(), acct.SocialNetType().DisplayName(), acct.ID())
	fmt.Printf("Lanes: %d displayed of %d, opens on %d\n", acct.DisplayedLaneCount(), len(acct.Lanes()), acct.InitialLaneIndex())
	if lists := acct.Lists(); len(lists) > 0 {
		fmt.Println("Lists:")
		for _, l := range lists {
			fmt.Printf("  %d\t%s\n", l.ID, l.Name)
		}
	}
}

func newAccountUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use [id or screen name]",
		Short: "Set the account termlanes opens on",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv()
			if err != nil {
				return err
			}
			defer env.Close()

			ctx := cmd.Context()
			acct, err := env.svc.Find(ctx, args[0])
			if err != nil {
				return fmt.Errorf("account not found: %s", args[0])
			}
			if err := env.svc.Activate(ctx, acct.ID()); err != nil {
				return fmt.Errorf("failed to activate account: %w", err)
			}

			if jsonFlag {
				return printJSON(jsonAction{OK: true, Action: "use", Account: acct.ScreenName()})
			}
			fmt.Printf("Active account: @%s\n", acct.ScreenName())
			return nil
		},
	}
}

func newAccountRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove [id or screen name]",
		Short: "Remove an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv()
			if err != nil {
				return err
			}
			defer env.Close()

			ctx := cmd.Context()
			acct, err := env.svc.Find(ctx, args[0])
			if err != nil {
				return fmt.Errorf("account not found: %s", args[0])
			}
			if err := env.svc.Remove(ctx, acct); err != nil {
				return err
			}

			if jsonFlag {
				return printJSON(jsonAction{OK: true, Action: "remove", Account: acct.ScreenName()})
			}

			fmt.Printf("Account removed: @%s\n", acct.ScreenName())
			return nil
		},
	}
}
