package main

import (
	"fmt"
	"time"

	"github.com/ZebulonRouseFrantzich/phantomjs-installer/internal/installer"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newInstallCmd(a app, v *viper.Viper) *cobra.Command {
	var noProgress bool

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Download PhantomJS and install it into the bin directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := loadSettings(v)
			logger := newLogger(a, s.Verbose)

			downloader := a.downloader
			if downloader == nil {
				httpDownloader := installer.NewHTTPDownloader()
				if !noProgress {
					httpDownloader.SetProgressWriter(a.stderr)
				}
				downloader = httpDownloader
			}

			inst, err := buildInstaller(cmd.Context(), s, a.detector, downloader, logger)
			if err != nil {
				return err
			}

			result, err := inst.Install(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(a.stdout, "%s %s installed to %s (%s)\n",
				installer.DisplayName,
				result.Package.PrettyVersion,
				result.BinaryPath,
				result.InstallTime.Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "do not show a download progress bar")

	return cmd
}
