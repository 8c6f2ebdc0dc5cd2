package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/vscode-server-fetcher/pkg/config"
	"github.com/vscode-server-fetcher/pkg/download"
	"github.com/vscode-server-fetcher/pkg/fetch"
	"github.com/vscode-server-fetcher/pkg/inventory"
	"github.com/vscode-server-fetcher/pkg/platform"
	"github.com/vscode-server-fetcher/pkg/registry"
	"github.com/vscode-server-fetcher/pkg/reporter"
	"github.com/vscode-server-fetcher/pkg/vcs"
	"github.com/vscode-server-fetcher/pkg/version"
)

var (
	buildVersion = "dev"
	buildCommit  = "none"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	rootCmd := &cobra.Command{
		Use:           "vscode-server-fetch",
		Short:         "Download VS Code server bundles for official releases",
		Long:          `Lists the official VS Code releases and downloads the server bundle of a release for one or all platforms, so it can be installed on hosts without internet access.`,
		Version:       fmt.Sprintf("%s (%s)", buildVersion, buildCommit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", ".vscode-server-fetch.yml", "Path to config file")
	rootCmd.PersistentFlags().String("project", "", "GitHub project (owner/repo) to read tags and releases from")
	rootCmd.PersistentFlags().String("api-url", "", "GitHub API base URL")
	rootCmd.PersistentFlags().String("github-token", os.Getenv("GITHUB_TOKEN"), "GitHub token for API access")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newListVersionsCmd(), newDownloadVersionCmd(), newDownloadLastVersionsCmd(), newListDownloadedCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// app holds what a single command invocation shares: one HTTP client and the
// caches owned by the registry and the resolver.
type app struct {
	cfg          *config.Config
	resolver     *version.Resolver
	orchestrator *download.Orchestrator
}

func loadConfig(cmd *cobra.Command) *config.Config {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn().Err(err).Msg("could not load config file, using defaults")
		}
		cfg = config.Default()
	}
	cfg = config.ApplyEnv(cfg)
	cfg = config.MergeFlags(cfg, cmd.Flags())

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	return cfg
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg := loadConfig(cmd)

	owner, repo, err := vcs.ParseGitHubRepo(cfg.Project)
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{}
	ghClient, err := vcs.NewClient(httpClient, cfg.APIURL, cfg.Token)
	if err != nil {
		return nil, err
	}
	repoClient := vcs.NewGitHubClient(ghClient)

	releases := registry.New(repoClient, owner, repo)
	resolver := version.NewResolver(repoClient, releases, owner, repo)
	orchestrator := download.New(resolver, fetch.New(httpClient), cfg.PlatformSet(), cfg.UpdateURL)

	return &app{
		cfg:          cfg,
		resolver:     resolver,
		orchestrator: orchestrator,
	}, nil
}

func checkPlatform(cfg *config.Config) error {
	set := cfg.PlatformSet()
	if !set.Valid(cfg.Platform) {
		return fmt.Errorf("invalid platform %q, valid platforms: %s", cfg.Platform, strings.Join(platformNames(set), ", "))
	}
	return nil
}

// platformNames lists the names accepted by --platform for set.
func platformNames(set platform.Set) []string {
	return append(set.Names(), platform.All)
}

func completePlatform(set platform.Set, toComplete string) []string {
	var completions []string
	for _, name := range platformNames(set) {
		if strings.HasPrefix(name, toComplete) {
			completions = append(completions, name)
		}
	}
	return completions
}

func addDownloadFlags(cmd *cobra.Command) {
	cmd.Flags().String("platform", platform.All, "Platform to download: a name from the configured platforms table, or "+platform.All)
	cmd.Flags().String("directory", "out", "Directory to download into")
	_ = cmd.RegisterFlagCompletionFunc("platform", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return completePlatform(loadConfig(cmd).PlatformSet(), toComplete), cobra.ShellCompDirectiveNoFileComp
	})
}

func newListVersionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list_versions",
		Short: "List every downloadable version, latest included",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			versions, err := a.resolver.VersionMap(cmd.Context())
			if err != nil {
				return err
			}
			return reporter.New(a.cfg.Output, cmd.OutOrStdout()).Versions(versions)
		},
	}
	cmd.Flags().String("output", "table", "Output format: table | json | yaml")
	return cmd
}

func newDownloadVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download_version <version>",
		Short: "Download the server bundles of one version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			if err := checkPlatform(a.cfg); err != nil {
				return err
			}
			if err := validateVersion(cmd.Context(), a.resolver, args[0]); err != nil {
				return err
			}
			return a.orchestrator.Download(cmd.Context(), args[0], a.cfg.Platform, a.cfg.Directory)
		},
	}
	addDownloadFlags(cmd)
	return cmd
}

func newDownloadLastVersionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download_last_versions",
		Short: "Download the server bundles of the N newest versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			if err := checkPlatform(a.cfg); err != nil {
				return err
			}
			last, _ := cmd.Flags().GetInt("last")
			return a.orchestrator.DownloadLast(cmd.Context(), last, a.cfg.Platform, a.cfg.Directory)
		},
	}
	addDownloadFlags(cmd)
	cmd.Flags().Int("last", 1, "Number of newest versions to download")
	return cmd
}

func newListDownloadedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list_downloaded",
		Short: "List the server bundles already present in the download directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(cmd)
			entries, err := inventory.Scan(cfg.Directory)
			if err != nil {
				return err
			}
			return reporter.New(cfg.Output, cmd.OutOrStdout()).Inventory(entries)
		},
	}
	cmd.Flags().String("directory", "out", "Download directory to scan")
	cmd.Flags().String("output", "table", "Output format: table | json | yaml")
	return cmd
}

func validateVersion(ctx context.Context, resolver *version.Resolver, v string) error {
	versions, err := resolver.VersionMap(ctx)
	if err != nil {
		return err
	}
	if _, err := versions.Lookup(v); err != nil {
		return fmt.Errorf("%w. Valid versions: %s", err, strings.Join(versions.Keys(), ", "))
	}
	return nil
}
