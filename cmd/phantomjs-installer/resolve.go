package main

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/ZebulonRouseFrantzich/phantomjs-installer/internal/installer"
	"github.com/ZebulonRouseFrantzich/phantomjs-installer/internal/platform"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newResolveCmd(a app, v *viper.Viper) *cobra.Command {
	var (
		osName string
		bits   int
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the version, platform and download URL without installing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := loadSettings(v)
			logger := newLogger(a, s.Verbose)

			detector := a.detector
			if osName != "" || bits != 0 {
				forced, err := forcedDetector(cmd, a.detector, osName, bits)
				if err != nil {
					return err
				}
				detector = forced
			}

			inst, err := buildInstaller(cmd.Context(), s, detector, installer.NewHTTPDownloader(), logger)
			if err != nil {
				return err
			}

			res, err := inst.Resolve(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(a.stdout, 0, 0, 1, ' ', 0)
			fmt.Fprintf(w, "version:\t%s\n", res.Package.PrettyVersion)
			fmt.Fprintf(w, "normalized:\t%s\n", res.Package.Version)
			fmt.Fprintf(w, "os:\t%s\n", res.Platform.OS)
			fmt.Fprintf(w, "bits:\t%d\n", res.Platform.Bits)
			fmt.Fprintf(w, "url:\t%s\n", res.Package.DistURL)
			fmt.Fprintf(w, "dist type:\t%s\n", res.Package.DistType)
			fmt.Fprintf(w, "target dir:\t%s\n", inst.TargetDir())
			fmt.Fprintf(w, "binary:\t%s\n", filepath.Join(inst.BinDir(), installer.ExecutableName(res.Platform)))
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&osName, "os", "", "resolve for this OS instead of the host (windows, macos, linux or a uname string)")
	cmd.Flags().IntVar(&bits, "bits", 0, "resolve for this bit-width instead of the host (32 or 64)")

	return cmd
}

// forcedDetector overrides the detected OS and bit-width with the given values.
func forcedDetector(cmd *cobra.Command, base platform.Detector, osName string, bits int) (platform.Detector, error) {
	if bits != 0 && bits != 32 && bits != 64 {
		return nil, fmt.Errorf("--bits must be 32 or 64, got %d", bits)
	}

	info, err := base.Detect(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("detect platform: %w", err)
	}
	forced := *info

	if osName != "" {
		switch osName {
		case platform.OSWindows, platform.OSMacOS, platform.OSLinux:
			forced.OS = osName
		default:
			forced.OS = platform.ClassifyOS(osName)
		}
		forced.Uname = osName
	}
	if bits != 0 {
		forced.Bits = bits
	}

	return platform.StaticDetector{Info: forced}, nil
}
