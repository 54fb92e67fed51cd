package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jrsteele09/go-storefront-client/apiclient"
	"github.com/jrsteele09/go-storefront-client/internal/config"
	"github.com/jrsteele09/go-storefront-client/internal/logging"
	"github.com/jrsteele09/go-storefront-client/session"
	"github.com/jrsteele09/go-storefront-client/session/filestore"
	"github.com/jrsteele09/go-storefront-client/session/sqlitestore"
)

// app is the state shared by every command of one invocation.
type app struct {
	out io.Writer

	configPath  string
	baseURL     string
	output      string
	storeDriver string
	storePath   string

	cfg    config.Config
	store  session.Store
	close  func() error
	client *apiclient.Client
}

// execute runs one invocation. The session store is closed whether or not the command failed.
func execute(ctx context.Context, a *app, args []string) (err error) {
	defer func() {
		if closeErr := a.teardown(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}()

	root := newRootCmd(a)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Browse products, manage a cart and place orders from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.SetOut(a.out)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default ./storefront.yaml or $CONFIG_PATH)")
	flags.StringVar(&a.baseURL, "base-url", "", "API base URL, overrides the saved and configured value")
	flags.StringVarP(&a.output, "output", "o", formatYAML, "output format: yaml or json")
	flags.StringVar(&a.storeDriver, "store", "", "session store: file, sqlite or memory")
	flags.StringVar(&a.storePath, "store-path", "", "session store location")

	root.AddCommand(
		newRegisterCmd(a),
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newResetCmd(a),
		newProfileCmd(a),
		newProductsCmd(a),
		newCartCmd(a),
		newOrdersCmd(a),
		newConfigCmd(a),
		newVersionCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	if a.output != formatYAML && a.output != formatJSON {
		return fmt.Errorf("unknown output format %q", a.output)
	}

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	logging.Setup(cfg.GetLogLevel(), cfg.GetLogFormat())

	store, closeStore, err := a.openStore(cmd)
	if err != nil {
		return err
	}
	a.store, a.close = store, closeStore

	baseURL := a.baseURL
	if baseURL == "" {
		baseURL = session.BaseURL(store)
	}
	if baseURL == "" {
		baseURL = cfg.GetBaseURL()
	}

	var opts []apiclient.Option
	if timeout := cfg.GetRequestTimeout(); timeout > 0 {
		opts = append(opts, apiclient.WithTimeout(timeout))
	}
	client, err := apiclient.New(baseURL, store, opts...)
	if err != nil {
		return err
	}
	a.client = client
	return nil
}

func (a *app) openStore(cmd *cobra.Command) (session.Store, func() error, error) {
	driver := a.cfg.GetStoreDriver()
	if a.storeDriver != "" {
		driver = config.StoreDriver(strings.ToLower(a.storeDriver))
	}
	path := a.storePath
	if path == "" {
		path = config.Store{Driver: string(driver)}.GetStorePath()
		if a.cfg.GetStoreDriver() == driver {
			path = a.cfg.GetStorePath()
		}
	}

	noop := func() error { return nil }
	switch driver {
	case config.StoreDriverMemory:
		return session.NewMemoryStore(), noop, nil
	case config.StoreDriverFile:
		store, err := filestore.Open(path)
		if err != nil {
			return nil, nil, err
		}
		return store, noop, nil
	case config.StoreDriverSQLite:
		store, err := sqlitestore.Open(cmd.Context(), path)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown session store %q", driver)
}

func (a *app) teardown() error {
	if a.close == nil {
		return nil
	}
	closeStore := a.close
	a.close = nil
	return closeStore()
}
