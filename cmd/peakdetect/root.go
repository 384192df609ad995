package main

import (
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cwbudde/algo-spike/internal/config"
)

func newRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:           "peakdetect",
		Short:         "Locally exclusive spike peak detection",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML or JSON)")

	load := func(cmd *cobra.Command) (config.Config, error) {
		return config.Load(viper.New(), cmd.Flags(), cfgFile)
	}

	root.AddCommand(newRunCmd(load))
	root.AddCommand(newNeighborsCmd(load))
	root.AddCommand(newConfigCmd(load))
	return root
}

type loadFunc func(cmd *cobra.Command) (config.Config, error)

func newLogger(w io.Writer, level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
	})
	return log
}
