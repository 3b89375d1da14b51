package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"

	"github.com/s0up4200/arrcore/config"
)

var (
	checkLatest bool
	updateRepo  string
)

var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print the version",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipConfig: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "arrcore %s (built %s)\n", version, buildTime)
		if !checkLatest {
			return nil
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		latest, newer, err := latestRelease(ctx, updateRepo, version)
		if err != nil {
			return err
		}
		if latest == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "No releases published yet.")
			return nil
		}
		if newer {
			fmt.Fprintf(cmd.OutOrStdout(), "A newer version is available: %s\n%s\n", latest.Version(), latest.URL)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "You are on the latest version.")
		}
		return nil
	},
}

var updateCmd = &cobra.Command{
	Use:         "update",
	Short:       "Replace this binary with the latest release",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipConfig: "true"},
	RunE:        runUpdate,
}

func init() {
	versionCmd.Flags().BoolVar(&checkLatest, "check", false, "check GitHub for a newer release")
	for _, c := range []*cobra.Command{versionCmd, updateCmd} {
		c.Flags().StringVar(&updateRepo, "repository", config.DefaultUpdateRepository, "GitHub owner/repo to fetch releases from")
	}
}

// currentSemVer parses a build version such as "v1.2.3". Development builds
// have no usable version.
func currentSemVer(v string) (semver.Version, bool) {
	parsed, err := semver.ParseTolerant(strings.TrimSpace(v))
	if err != nil {
		return semver.Version{}, false
	}
	return parsed, true
}

// latestRelease returns the newest release and whether it is newer than
// current. A development build treats every release as newer.
func latestRelease(ctx context.Context, repo, current string) (*selfupdate.Release, bool, error) {
	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(repo))
	if err != nil {
		return nil, false, fmt.Errorf("failed to detect latest release: %w", err)
	}
	if !found {
		return nil, false, nil
	}

	cur, ok := currentSemVer(current)
	if !ok {
		return latest, true, nil
	}
	return latest, !latest.LessOrEqual(cur.String()), nil
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	latest, newer, err := latestRelease(ctx, updateRepo, version)
	if err != nil {
		return err
	}
	if latest == nil || !newer {
		fmt.Fprintf(cmd.OutOrStdout(), "arrcore %s is up to date\n", version)
		return nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("failed to locate executable: %w", err)
	}

	logger.Info().Str("from", version).Str("to", latest.Version()).Str("asset", latest.AssetName).Msg("updating")
	if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
		return fmt.Errorf("failed to update binary: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Updated to %s\n", latest.Version())
	return nil
}
