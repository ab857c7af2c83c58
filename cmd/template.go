package cmd

import (
	"log"

	"github.com/spigell/jobassist/internal/logger"
	"github.com/spigell/jobassist/internal/render"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var templateCmd = &cobra.Command{
	Use:   "template [path]",
	Short: "Write a minimal Word template with the {cv_content} placeholder",
	Args:  cobra.MaximumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
		if err != nil {
			log.Fatalf("creating a logger: %s", err)
		}

		path := render.DefaultTemplateName
		if len(args) == 1 {
			path = args[0]
		}

		if err := render.Scaffold(path); err != nil {
			logger.Fatal("writing the template", zap.Error(err))
		}

		logger.Info("template created",
			zap.String("path", path),
			zap.String("placeholder", "{"+render.Placeholder+"}"),
		)
	},
}

func init() {
	rootCmd.AddCommand(templateCmd)
}
