package cmd

import (
	"github.com/go-logr/zerologr"
	"github.com/jzelinskie/cobrautil/v2"
	"github.com/jzelinskie/cobrautil/v2/cobrazerolog"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/authzed/multidict/internal/logging"
)

func RegisterRootFlags(cmd *cobra.Command) {
	cobrazerolog.New().RegisterFlags(cmd.PersistentFlags())
}

// DefaultPreRunE syncs flags with MULTIDICT_* environment variables (and an
// optional multidict.env file) and installs the configured zerolog logger.
func DefaultPreRunE(programName string) cobrautil.CobraRunFunc {
	return cobrautil.CommandStack(
		cobrautil.SyncViperDotEnvPreRunE(programName, programName+".env", zerologr.New(&logging.Logger)),
		cobrazerolog.New(
			cobrazerolog.WithTarget(func(logger zerolog.Logger) {
				logging.SetGlobalLogger(logger)
			}),
		).RunE(),
	)
}

func NewRootCommand(programName string) *cobra.Command {
	return &cobra.Command{
		Use:               programName,
		Short:             "Group key-value pairs into multi-valued dictionaries",
		Long:              "A tool for grouping key-value pairs by key, with configurable duplicate and case handling",
		Example:           GroupExample(programName),
		PersistentPreRunE: DefaultPreRunE(programName),
		SilenceErrors:     true,
		SilenceUsage:      true,
	}
}
