package main

import (
	"fmt"
	"io"

	"github.com/benoitkugler/gridlayout/internal/config"
	"github.com/benoitkugler/gridlayout/logger"
	"github.com/benoitkugler/gridlayout/version"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// app is the state shared by the sub commands. Each root command owns
// its viper instance, so that tests may build fresh ones.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	root := &cobra.Command{
		Use:           "gridlayout",
		Short:         "Lay out CSS grid containers and print their geometry.",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.v, a.cfgFile)
			if err != nil {
				return err
			}
			if err := logger.Setup(cfg.Logger); err != nil {
				return err
			}
			a.cfg = cfg
			logger.ProgressLogger.Debugf("starting %s", version.VersionString)
			return nil
		},
	}
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	flags := root.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "", "config file (default is ./gridlayout.yaml)")
	flags.String("log-level", "warn", "log level: debug, info, warn or error")
	flags.StringP("format", "f", "json", "output format: json or yaml")
	flags.Float64("width", 800, "viewport width, in pixels")
	flags.Float64("height", 0, "viewport height, in pixels (0 for an indefinite height)")
	flags.IntP("concurrency", "j", 4, "number of files processed in parallel")
	for key, flag := range map[string]string{
		"logger.level":    "log-level",
		"output.format":   "format",
		"viewport.width":  "width",
		"viewport.height": "height",
		"concurrency":     "concurrency",
	} {
		// only fails for a nil flag
		_ = a.v.BindPFlag(key, flags.Lookup(flag))
	}

	root.AddCommand(newLayoutCmd(a), newMeasureCmd(a), newSnapshotCmd(a))
	return root
}

// write encodes v in the configured format.
func (a *app) write(w io.Writer, v interface{}) error {
	switch a.cfg.Output.Format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding output: %w", err)
		}
		return enc.Close()
	default:
		out, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding output: %w", err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	}
}
