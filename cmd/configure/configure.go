package configure

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ClasicRando/sftp-sync/cmd/util"
	"github.com/ClasicRando/sftp-sync/pkg/config"
	"github.com/ClasicRando/sftp-sync/pkg/errors"
)

// New creates a new `configure` command.
func New() *cobra.Command {
	var cliOpts config.Profile
	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Write the sync profile",
		Long: "Write the sync profile so that `sftp-sync sync` doesn't need " +
			"the connection flags on every run.\n" +
			"Values already present in the profile are kept unless the " +
			"matching flag is set.",
		Run: func(_ *cobra.Command, _ []string) {
			if err := writeProfile(cliOpts); err != nil {
				util.HandleFatalError(errors.WithContext(err, "write profile"))
			}
		},
	}
	cmd.Flags().StringVar(&cliOpts.Host, "host", "", "Address of the remote host.")
	cmd.Flags().IntVarP(&cliOpts.Port, "port", "p", 0, "SSH port of the remote host.")
	cmd.Flags().StringVar(&cliOpts.Username, "username", "", "User to authenticate as.")
	cmd.Flags().StringVarP(&cliOpts.LocalDirectory, "local-directory", "l", "",
		"Root of the local mirror.")
	cmd.Flags().StringVarP(&cliOpts.RemoteDirectory, "remote-directory", "r", "",
		"Root of the remote tree to mirror.")
	cmd.Flags().StringSliceVar(&cliOpts.Exclude, "exclude", nil,
		"Names to skip wherever they occur in the remote tree. Repeatable.")
	return cmd
}

func writeProfile(cliOpts config.Profile) error {
	profile, err := config.ParseProfile()
	if err != nil {
		if _, ok := errors.RootCause(err).(errors.FileNotFound); !ok {
			return errors.WithContext(err, "parse existing profile")
		}
		profile = config.Profile{}
	}

	profile = profile.Merge(cliOpts)
	if err := config.WriteProfile(profile); err != nil {
		return err
	}

	path, err := config.GetProfilePath()
	if err != nil {
		return errors.WithContext(err, "get profile path")
	}

	fmt.Printf("Wrote profile to %s\n", path)
	return nil
}
