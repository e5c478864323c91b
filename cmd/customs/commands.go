package customs

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/customs/internal/version"
	"github.com/arthur-debert/customs/pkg/archive"
	"github.com/arthur-debert/customs/pkg/build"
	"github.com/arthur-debert/customs/pkg/cobrax/topics"
	"github.com/arthur-debert/customs/pkg/collision"
	"github.com/arthur-debert/customs/pkg/config"
	"github.com/arthur-debert/customs/pkg/errors"
	"github.com/arthur-debert/customs/pkg/ignore"
	"github.com/arthur-debert/customs/pkg/logging"
	"github.com/arthur-debert/customs/pkg/manifest"
	"github.com/arthur-debert/customs/pkg/ui"
	"github.com/arthur-debert/customs/pkg/ui/confirmations"
	"github.com/arthur-debert/customs/pkg/ui/display"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// newConfirmer asks before an existing archive is replaced
var newConfirmer = func() collision.Confirmer {
	return confirmations.NewConsoleDialog()
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	var (
		verbosity int
		output    string
	)

	rootCmd := &cobra.Command{
		Use:     "customs",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVarP(&output, flagOutput, "o", string(ui.FormatAuto), MsgFlagOutput)
	_ = rootCmd.RegisterFlagCompletionFunc(flagOutput, func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return ui.Formats(), cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	tm := mustTopics()

	rootCmd.AddCommand(newBuildCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newInspectCmd())
	rootCmd.AddCommand(newTopicsCmd(tm))
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	tm.Install(rootCmd)

	return rootCmd
}

func mustTopics() *topics.TopicManager {
	sub, err := fs.Sub(topicsFS, "topics")
	if err != nil {
		panic(err)
	}
	tm, err := topics.New(sub, topics.Options{
		Extensions: []string{".md"},
		Renderer:   topics.NewMarkdownRenderer(stdoutIsTerminal(), 0),
	})
	if err != nil {
		panic(err)
	}
	return tm
}

// projectRoot resolves --path, defaulting to the working directory
func projectRoot(path string) (string, error) {
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", errors.Wrap(err, errors.ErrIO, MsgErrWorkingDir)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrIO, "failed to resolve %s", path)
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return "", errors.Newf(errors.ErrInvalidInput, "%s is not a directory", path).
			WithDetail(errors.DetailPath, abs)
	}
	return abs, nil
}

func newBuildCmd() *cobra.Command {
	var (
		path       string
		allowDirty bool
		yes        bool
		dryRun     bool
		ignoreMode string
		noAtomic   bool
		keepTimes  bool
	)

	cmd := &cobra.Command{
		Use:     "build",
		Short:   MsgBuildShort,
		Long:    MsgBuildLong,
		Example: MsgBuildExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.build")

			root, err := projectRoot(path)
			if err != nil {
				return err
			}

			overrides := map[string]interface{}{}
			if cmd.Flags().Changed("ignore-mode") {
				if _, err := ignore.ParseMode(ignoreMode); err != nil {
					return err
				}
				overrides["ignore.mode"] = ignoreMode
			}
			if noAtomic {
				overrides["output.atomic"] = false
			}
			if keepTimes {
				overrides["output.preserve_times"] = true
			}

			cfg, err := config.Load(root, overrides)
			if err != nil {
				return err
			}

			opts := build.NewOptions(root, cfg)
			opts.AllowDirty = allowDirty
			opts.AutoYes = yes
			opts.DryRun = dryRun
			opts.Confirmer = newConfirmer()

			logger.Info().
				Str("root", root).
				Bool("allowDirty", allowDirty).
				Bool("yes", yes).
				Bool("dryRun", dryRun).
				Str("ignoreMode", string(opts.IgnoreMode)).
				Msg("Starting build")

			result, err := build.Run(opts)
			if err != nil {
				return err
			}

			r, err := newRenderer(cmd, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if err := r.RenderResult(display.FromBuild(result)); err != nil {
				return err
			}
			if result.Canceled {
				logger.Info().Msg(MsgCanceled)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "", MsgFlagPath)
	cmd.Flags().BoolVar(&allowDirty, "allow-dirty", false, MsgFlagAllowDirty)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, MsgFlagYes)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)
	cmd.Flags().StringVar(&ignoreMode, "ignore-mode", config.IgnoreModeAuto, MsgFlagIgnoreMode)
	cmd.Flags().BoolVar(&noAtomic, "no-atomic", false, MsgFlagNoAtomic)
	cmd.Flags().BoolVar(&keepTimes, "preserve-times", false, MsgFlagPreserveTimes)

	_ = cmd.RegisterFlagCompletionFunc("ignore-mode", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "vcs", "file", "none"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func newCheckCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:     "check",
		Short:   MsgCheckShort,
		Long:    MsgCheckLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := projectRoot(path)
			if err != nil {
				return err
			}
			cfg, err := config.Load(root, nil)
			if err != nil {
				return err
			}

			manifestPath, err := manifest.Find(root, cfg.Manifest.Files...)
			if err != nil {
				return err
			}
			m, err := manifest.Load(manifestPath)
			if err != nil {
				return err
			}

			r, err := newRenderer(cmd, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return r.RenderResult(display.FromManifest(m, cfg.Output.Extension))
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "", MsgFlagPath)
	return cmd
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "inspect <archive>",
		Short:   MsgInspectShort,
		Long:    MsgInspectLong,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := archive.Items(args[0])
			if err != nil {
				return err
			}
			digest, err := archive.Digest(args[0])
			if err != nil {
				return err
			}
			r, err := newRenderer(cmd, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return r.RenderResult(display.FromArchive(args[0], digest, items))
		},
	}
}

func newTopicsCmd(tm *topics.TopicManager) *cobra.Command {
	return &cobra.Command{
		Use:     "topics [topic]",
		Short:   MsgTopicsShort,
		Long:    MsgTopicsLong,
		GroupID: "misc",
		Args:    cobra.MaximumNArgs(1),
		ValidArgsFunction: func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return tm.ListTopics(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			if err := tm.Show(cmd.OutOrStdout(), cmd.Root().Name(), name); err != nil {
				return errors.Wrap(err, errors.ErrInvalidInput, "topic lookup failed")
			}
			return nil
		},
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Long:    MsgConfigLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := io.WriteString(cmd.OutOrStdout(), config.DefaultContent())
			return err
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newRenderer(cmd, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			info := version.Get()
			value, _ := cmd.Root().PersistentFlags().GetString(flagOutput)
			if f, _ := ui.ParseFormat(value); f == ui.FormatJSON {
				return r.RenderResult(info)
			}
			return r.RenderMessage(strings.TrimRight(info.String(), "\n"))
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
		},
	}
}
