package macappbundler

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/macappbundler/cmd/macappbundler/topics"
	"github.com/arthur-debert/macappbundler/internal/version"
	cobratopics "github.com/arthur-debert/macappbundler/pkg/cobrax/topics"
	"github.com/arthur-debert/macappbundler/pkg/commands/bundle"
	"github.com/arthur-debert/macappbundler/pkg/commands/diskimage"
	"github.com/arthur-debert/macappbundler/pkg/commands/initialize"
	"github.com/arthur-debert/macappbundler/pkg/commands/verify"
	"github.com/arthur-debert/macappbundler/pkg/config"
	"github.com/arthur-debert/macappbundler/pkg/errors"
	"github.com/arthur-debert/macappbundler/pkg/logging"
	"github.com/arthur-debert/macappbundler/pkg/output"
)

// globalOptions are the persistent flags shared by every command
type globalOptions struct {
	verbosity  int
	dryRun     bool
	configFile string
	format     string
	set        []string
}

// loadConfig reads the layered configuration for the current directory
func (g *globalOptions) loadConfig() (*config.Config, error) {
	overrides := make(map[string]interface{}, len(g.set))
	for _, kv := range g.set {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return nil, errors.Newf(errors.ErrInvalidInput, "--set expects key=value, got %q", kv)
		}
		overrides[key] = value
	}

	cfg, err := config.Load(config.LoadOptions{Path: g.configFile, Overrides: overrides})
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadConfig, err)
	}
	log.Debug().Str("file", cfg.File).Msg("Configuration loaded")
	return cfg, nil
}

// render writes report to the command's output in the selected format
func (g *globalOptions) render(cmd *cobra.Command, report *output.Report) error {
	format, err := output.ParseFormat(g.format)
	if err != nil {
		return fmt.Errorf(MsgErrFormat, err)
	}
	return output.NewRenderer(cmd.OutOrStdout(), format.Resolve(os.Stdout)).Render(report)
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	g := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "macappbundler",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(g.verbosity)
			log.Debug().Str("command", cmd.Name()).Bool("dry_run", g.dryRun).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	}

	rootCmd.PersistentFlags().CountVarP(&g.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&g.dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().StringVarP(&g.configFile, "config", "c", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVarP(&g.format, "format", "f", "auto", MsgFlagFormat)
	rootCmd.PersistentFlags().StringArrayVar(&g.set, "set", nil, MsgFlagSet)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newBundleCmd(g))
	rootCmd.AddCommand(newDiskImageCmd(g))
	rootCmd.AddCommand(newVerifyCmd(g))
	rootCmd.AddCommand(newInitCmd(g))
	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newManCmd())

	if _, err := cobratopics.Initialize(rootCmd, topics.FS, cobratopics.Options{
		Extensions: []string{".md"},
		Renderer:   cobratopics.NewGlamourRenderer(),
	}); err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}
	rootCmd.SetHelpCommandGroupID("misc")

	return rootCmd
}

func newBundleCmd(g *globalOptions) *cobra.Command {
	var noDMG, noPublish bool

	cmd := &cobra.Command{
		Use:     "bundle",
		Short:   MsgBundleShort,
		Long:    MsgBundleLong,
		Example: MsgBundleExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}

			result, err := bundle.Run(cmd.Context(), bundle.Options{
				Config:      cfg,
				DryRun:      g.dryRun,
				NoDiskImage: noDMG,
				NoPublish:   noPublish,
			})
			if result != nil && result.Bundle != nil {
				if rerr := g.render(cmd, bundleReport(result)); rerr != nil {
					log.Error().Err(rerr).Msg("Failed to render result")
				}
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&noDMG, "no-dmg", false, MsgFlagNoDMG)
	cmd.Flags().BoolVar(&noPublish, "no-publish", false, MsgFlagNoPub)
	return cmd
}

func newDiskImageCmd(g *globalOptions) *cobra.Command {
	var appDir string

	cmd := &cobra.Command{
		Use:     "diskimage",
		Aliases: []string{"dmg"},
		Short:   MsgDiskImageShort,
		Long:    MsgDiskImageLong,
		Example: MsgDiskImageExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}

			result, err := diskimage.Package(cmd.Context(), diskimage.Options{
				Config: cfg,
				AppDir: appDir,
				DryRun: g.dryRun,
			})
			if err != nil {
				return err
			}
			return g.render(cmd, diskImageReport(result))
		},
	}

	cmd.Flags().StringVar(&appDir, "app", "", MsgFlagApp)
	return cmd
}

func newVerifyCmd(g *globalOptions) *cobra.Command {
	var appDir string

	cmd := &cobra.Command{
		Use:     "verify",
		Short:   MsgVerifyShort,
		Long:    MsgVerifyLong,
		Example: MsgVerifyExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := verify.Options{AppDir: appDir}
			if appDir == "" {
				cfg, err := g.loadConfig()
				if err != nil {
					return err
				}
				opts.Config = cfg
			}

			result, err := verify.Verify(opts)
			if result != nil {
				if rerr := g.render(cmd, verifyReport(result)); rerr != nil {
					return rerr
				}
			}
			return err
		},
	}

	cmd.Flags().StringVar(&appDir, "app", "", MsgFlagApp)
	return cmd
}

func newInitCmd(g *globalOptions) *cobra.Command {
	var (
		opts initialize.Options
		dir  string
	)

	cmd := &cobra.Command{
		Use:     "init <name>",
		Short:   MsgInitShort,
		Long:    MsgInitLong,
		Example: MsgInitExample,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Name = args[0]
			opts.Dir = dir
			opts.DryRun = g.dryRun

			result, err := initialize.Init(opts)
			if err != nil {
				return err
			}
			return g.render(cmd, initReport(result))
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "Project directory")
	cmd.Flags().StringVar(&opts.GroupID, "group", "", MsgFlagGroup)
	cmd.Flags().StringVar(&opts.ArtifactID, "artifact", "", MsgFlagArtifact)
	cmd.Flags().StringVar(&opts.Version, "app-version", "", MsgFlagVersion)
	cmd.Flags().StringVar(&opts.MainClass, "main-class", "", MsgFlagClass)
	cmd.Flags().StringVar(&opts.MainModule, "main-module", "", MsgFlagModule)
	cmd.Flags().BoolVar(&opts.Force, "force", false, MsgFlagForce)
	cmd.MarkFlagsMutuallyExclusive("main-class", "main-module")
	return cmd
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "topics",
		Short:   MsgTopicsShort,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			helpCmd, _, err := cmd.Root().Find([]string{"help"})
			if err != nil || helpCmd.Run == nil {
				return fmt.Errorf("help command not found")
			}
			helpCmd.Run(helpCmd, []string{"topics"})
			return nil
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}

func newManCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "man",
		Short:  MsgManShort,
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			header := &doc.GenManHeader{
				Title:   "MACAPPBUNDLER",
				Section: "1",
				Source:  "macappbundler " + version.Version,
				Manual:  "macappbundler manual",
			}
			return doc.GenMan(cmd.Root(), header, cmd.OutOrStdout())
		},
	}
}
