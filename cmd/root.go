package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/hmapp/maps-key-bridge/channel"
	"github.com/hmapp/maps-key-bridge/config"
	"github.com/hmapp/maps-key-bridge/mcp"
	"github.com/hmapp/maps-key-bridge/metadata"
	"github.com/hmapp/maps-key-bridge/secret"

	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	version           = "dev"
	cfgFile           string
	source            string
	logLevel          string
	debugSecretPrefix bool
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: false,
		FullTimestamp:    true,
	})
	// stdout carries the MCP protocol and the printed key
	log.SetOutput(os.Stderr)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().StringVarP(&source, "source", "s", "", "metadata source (manifest, file, dotenv, env, keychain)")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&debugSecretPrefix, "debug-secret-prefix", false, "log a short prefix of retrieved secrets at debug level")

	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(versionCmd)
}

var rootCmd = &cobra.Command{
	Use:   "maps-key-bridge",
	Short: "Serve the application's maps API key over a call channel",
	Long: `Answers the application's getGoogleMapsApiKey request on the
` + secret.ChannelName + ` channel.

The key is read from the com.google.android.geo.API_KEY metadata entry of
the configured source:
- manifest: <meta-data> in AndroidManifest.xml (default)
- file:     'metadata' map in a YAML file
- dotenv:   a .env file
- env:      COM_GOOGLE_ANDROID_GEO_API_KEY (with optional prefix)
- keychain: macOS keychain generic password (service = application ID)

Without a subcommand the channel is served as MCP tools on stdio.
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := setup()
		if err != nil {
			return err
		}

		mcpServer := mcp.NewMCPServer(d, version, log)

		// Run stdio transport using the library's built-in handler
		return server.ServeStdio(mcpServer.GetServer())
	},
}

var getCmd = &cobra.Command{
	Use:   "get [method]",
	Short: "Invoke a method on the key channel once and print the result",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		method := secret.MethodGetGoogleMapsAPIKey
		if len(args) == 1 {
			method = args[0]
		}

		d, err := setup()
		if err != nil {
			return err
		}

		res := d.Invoke(ctx, secret.ChannelName, method)
		switch {
		case res.NotImplemented:
			return fmt.Errorf("method %s is not implemented on %s", method, secret.ChannelName)
		case res.Err != nil:
			return fmt.Errorf("%s: %s", res.Err.Code, res.Err.Message)
		}

		fmt.Fprintln(cmd.OutOrStdout(), res.Value)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

// setup loads the configuration and registers the key channel. It runs once
// per process.
func setup() (*channel.Dispatcher, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	log.SetLevel(level)

	src, err := newSource(cfg)
	if err != nil {
		return nil, err
	}

	handler := secret.NewHandler(src, log)
	handler.SetDebugSecretPrefix(cfg.DebugSecretPrefix)

	d := channel.NewDispatcher()
	if err := d.Register(secret.ChannelName, channel.SecretHandler(handler)); err != nil {
		return nil, err
	}

	log.Infof("Serving %s from %s source", secret.ChannelName, cfg.Source)
	return d, nil
}

func loadConfig() (*config.Config, error) {
	config.SetLogger(log)
	metadata.SetLogger(log)
	channel.SetLogger(log)

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	// Override with CLI flags
	if source != "" {
		cfg.Source = source
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if debugSecretPrefix {
		cfg.DebugSecretPrefix = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newSource(cfg *config.Config) (secret.ConfigSource, error) {
	switch cfg.Source {
	case config.SourceManifest:
		return metadata.NewManifestSource(cfg.ManifestPath, cfg.ApplicationID), nil
	case config.SourceFile:
		return metadata.NewFileSource(cfg.MetadataFile), nil
	case config.SourceDotenv:
		return metadata.NewDotenvSource(cfg.DotenvFile), nil
	case config.SourceEnv:
		return metadata.NewEnvSource(cfg.EnvPrefix), nil
	case config.SourceKeychain:
		return metadata.NewKeychainSource(cfg.ApplicationID), nil
	}
	return nil, fmt.Errorf("unknown source %q", cfg.Source)
}

func Execute() {
	// Add git info to version
	version = getVersion()

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
