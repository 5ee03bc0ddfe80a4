package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lu-zhengda/termlanes/internal/account"
	"github.com/lu-zhengda/termlanes/internal/app"
	"github.com/lu-zhengda/termlanes/internal/config"
	"github.com/lu-zhengda/termlanes/internal/domain"
	"github.com/lu-zhengda/termlanes/internal/i18n"
	"github.com/lu-zhengda/termlanes/internal/logging"
	"github.com/lu-zhengda/termlanes/internal/provider"
	"github.com/lu-zhengda/termlanes/internal/provider/appdotnet"
	"github.com/lu-zhengda/termlanes/internal/provider/twitter"
	"github.com/lu-zhengda/termlanes/internal/store"
	"github.com/lu-zhengda/termlanes/internal/store/sqlite"
	"github.com/lu-zhengda/termlanes/internal/tui"
)

var (
	// version is set via ldflags at build time.
	version = "dev"
	cfgFile string

	// jsonFlag enables JSON output for all commands.
	jsonFlag    bool
	verboseFlag bool
	accountFlag string
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "termlanes",
		Short:   "Terminal Twitter and App.net client",
		Long:    "A terminal client that shows Twitter and App.net accounts as lanes.",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return logging.Setup(os.Stderr, cfg.Log.Level, verboseFlag)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if shell, _ := cmd.Flags().GetString("generate-completion"); shell != "" {
				switch shell {
				case "bash":
					return cmd.Root().GenBashCompletion(os.Stdout)
				case "zsh":
					return cmd.Root().GenZshCompletion(os.Stdout)
				case "fish":
					return cmd.Root().GenFishCompletion(os.Stdout, true)
				default:
					return fmt.Errorf("unsupported shell: %s (use bash, zsh, or fish)", shell)
				}
			}

			env, err := openEnv()
			if err != nil {
				return err
			}
			defer env.Close()

			ctx := cmd.Context()
			active, err := env.resolveAccount(ctx)
			if err != nil {
				return err
			}

			// Load all accounts for account switching.
			accounts, err := env.svc.LoadAll(ctx)
			if err != nil {
				return err
			}

			// Keep log output off the alternate screen.
			closeLog, err := logging.ToFile(filepath.Join(config.DataDir(), "termlanes.log"))
			if err != nil {
				return err
			}
			defer closeLog()

			return tui.Run(tui.Options{
				Service:   env.svc,
				Accounts:  accounts,
				ActiveID:  active.ID(),
				Providers: env.providers,
				Images:    provider.NewImageFetcher(nil),
			})
		},
	}
	root.SetVersionTemplate(fmt.Sprintf("termlanes %s\n", version))
	root.CompletionOptions.DisableDefaultCmd = true
	root.Flags().String("generate-completion", "", "Generate shell completion (bash, zsh, fish)")
	root.Flags().MarkHidden("generate-completion")
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	root.PersistentFlags().BoolVar(&jsonFlag, "json", false, "output in JSON format")
	root.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&accountFlag, "account", "", "account id or screen name (defaults to the active account)")
	root.AddCommand(newAccountCmd())
	root.AddCommand(newLanesCmd())
	root.AddCommand(newListsCmd())
	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// env bundles what most commands need.
type env struct {
	cfg       *config.Config
	db        *sqlite.DB
	svc       *app.AccountService
	providers app.ProviderFactory
}

func openEnv() (*env, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	db, err := openDB()
	if err != nil {
		return nil, err
	}

	var creds store.CredentialStore
	if cfg.Credentials.Backend == config.BackendKeyring {
		creds = store.NewKeyringCredentialStore()
	}
	svc := app.NewAccountService(db, creds,
		account.WithLanguage(i18n.ParseLanguage(cfg.UI.Language)),
		account.WithProfileImages(cfg.UI.ProfileImages),
	)
	return &env{cfg: cfg, db: db, svc: svc, providers: providerFactory(cfg)}, nil
}

func (e *env) Close() error {
	return e.db.Close()
}

// resolveAccount returns the account named by --account, the configured
// default, or the active account, in that order.
func (e *env) resolveAccount(ctx context.Context) (*account.Account, error) {
	ref := accountFlag
	if ref == "" {
		ref = e.cfg.Accounts.Default
	}
	if ref != "" {
		acct, err := e.svc.Find(ctx, ref)
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("account not found: %s", ref)
		}
		return acct, err
	}
	return e.svc.Active(ctx)
}

// openDB creates the data directory and opens the SQLite database.
func openDB() (*sqlite.DB, error) {
	dataDir := config.DataDir()
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "termlanes.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// loadConfig loads the application configuration from the config file.
func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		path = filepath.Join(config.ConfigDir(), "config.toml")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// twitterConfig returns the Twitter consumer credentials using the first
// available source: config file, then environment variables.
func twitterConfig(cfg *config.Config) twitter.Config {
	tc := twitter.Config{
		ConsumerKey:    cfg.Twitter.ConsumerKey,
		ConsumerSecret: cfg.Twitter.ConsumerSecret,
	}
	if tc.ConsumerKey == "" || tc.ConsumerSecret == "" {
		tc.ConsumerKey = os.Getenv("TWITTER_CONSUMER_KEY")
		tc.ConsumerSecret = os.Getenv("TWITTER_CONSUMER_SECRET")
	}
	return tc
}

// appdotnetOAuthConfig returns the App.net client credentials using the
// first available source: config file, then environment variables.
func appdotnetOAuthConfig(cfg *config.Config) appdotnet.OAuthConfig {
	oc := appdotnet.OAuthConfig{
		ClientID:     cfg.Appdotnet.ClientID,
		ClientSecret: cfg.Appdotnet.ClientSecret,
	}
	if oc.ClientID == "" || oc.ClientSecret == "" {
		oc.ClientID = os.Getenv("ADN_CLIENT_ID")
		oc.ClientSecret = os.Getenv("ADN_CLIENT_SECRET")
	}
	return oc
}

func providerFactory(cfg *config.Config) app.ProviderFactory {
	return func(network domain.SocialNetType, creds store.Credentials) (provider.SocialProvider, error) {
		switch network {
		case domain.Twitter:
			tc := twitterConfig(cfg)
			if err := twitter.EnsureCredentials(tc); err != nil {
				return nil, err
			}
			return twitter.New(tc, creds), nil
		case domain.Appdotnet:
			return appdotnet.New(appdotnet.Config{APIBase: cfg.Appdotnet.APIBase}, creds), nil
		}
		return nil, fmt.Errorf("unsupported social network: %q", network)
	}
}

// parseNetwork accepts the user-facing network names.
func parseNetwork(s string) (domain.SocialNetType, error) {
	switch s {
	case "twitter", "Twitter":
		return domain.Twitter, nil
	case "appdotnet", "adn", "app.net", "Appdotnet":
		return domain.Appdotnet, nil
	}
	return "", fmt.Errorf("unsupported network: %s (use twitter or appdotnet)", s)
}
