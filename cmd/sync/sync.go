package sync

import (
	"fmt"
	"syscall"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/ssh/terminal"

	"github.com/ClasicRando/sftp-sync/cmd/util"
	"github.com/ClasicRando/sftp-sync/pkg/config"
	"github.com/ClasicRando/sftp-sync/pkg/errors"
	"github.com/ClasicRando/sftp-sync/pkg/remote"
	"github.com/ClasicRando/sftp-sync/pkg/sync"
)

// New creates a new `sync` command.
func New() *cobra.Command {
	var cliOpts config.Profile
	var password string
	var parallel int
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Mirror the remote directory onto the local machine",
		Long: `Mirror the configured remote directory tree onto the local directory.

Missing local directories are created, and a file is copied when it doesn't
exist locally or its size differs from the remote one. Excluded names are
skipped wherever they occur. Files that only exist locally are left alone.

Connection settings come from the profile written by ` + "`sftp-sync configure`" + `;
any flag set here overrides the profile value for this run.`,
		Run: func(_ *cobra.Command, _ []string) {
			profile, err := loadProfile(cliOpts)
			if err != nil {
				util.HandleFatalError(err)
			}

			if err := profile.Validate(); err != nil {
				util.HandleFatalError(err)
			}

			if err := run(profile, password, parallel); err != nil {
				util.HandleFatalError(err)
			}
		},
	}
	cmd.Flags().StringVar(&cliOpts.Host, "host", "", "Address of the remote host.")
	cmd.Flags().IntVarP(&cliOpts.Port, "port", "p", 0, "SSH port of the remote host.")
	cmd.Flags().StringVar(&cliOpts.Username, "username", "", "User to authenticate as.")
	cmd.Flags().StringVar(&password, "password", "",
		"Password to authenticate with. Prompted for when not set.")
	cmd.Flags().StringVarP(&cliOpts.LocalDirectory, "local-directory", "l", "",
		"Root of the local mirror. Must already exist.")
	cmd.Flags().StringVarP(&cliOpts.RemoteDirectory, "remote-directory", "r", "",
		"Root of the remote tree to mirror.")
	cmd.Flags().StringSliceVar(&cliOpts.Exclude, "exclude", nil,
		"Names to skip wherever they occur in the remote tree. Repeatable.")
	cmd.Flags().IntVarP(&parallel, "parallel", "j", 0,
		"Number of concurrent transfers. Defaults to the number of CPUs.")
	return cmd
}

// loadProfile merges the command line flags over the profile file. A missing
// profile file is fine as long as the flags supply everything.
func loadProfile(cliOpts config.Profile) (config.Profile, error) {
	profile, err := config.ParseProfile()
	if err != nil {
		if _, ok := errors.RootCause(err).(errors.FileNotFound); !ok {
			return config.Profile{}, errors.WithContext(err, "parse profile")
		}
		profile = config.Profile{Port: config.DefaultPort}
	}

	profile = profile.Merge(cliOpts)

	profile.LocalDirectory, err = homedir.Expand(profile.LocalDirectory)
	if err != nil {
		return config.Profile{}, errors.WithContext(err, "expand local directory")
	}
	return profile, nil
}

func run(profile config.Profile, password string, parallel int) error {
	if password == "" {
		var err error
		password, err = promptPassword(profile.Username)
		if err != nil {
			return err
		}
	}

	client, err := remote.Dial(profile.Host, profile.Port, profile.Username, password)
	if err != nil {
		return errors.WithContext(err, "connect to remote host")
	}
	defer client.Close()

	// Each transfer worker reads through its own SFTP channel drawn from
	// this pool rather than sharing the traversal session.
	pool := remote.NewPool(client.Channel)
	defer pool.Close()

	hideCursor()
	defer showCursor()
	watchInterrupts()

	syncer := sync.New(sync.Config{
		Remote:          client,
		Pool:            pool,
		LocalDirectory:  profile.LocalDirectory,
		RemoteDirectory: profile.RemoteDirectory,
		Exclude:         profile.Exclude,
		Workers:         parallel,
		Reporter:        terminalReporter{},
	})
	if err := syncer.Run(); err != nil {
		return errors.WithContext(err, fmt.Sprintf(
			"sync %q with %q", profile.LocalDirectory, profile.RemoteDirectory))
	}
	return nil
}

func promptPassword(username string) (string, error) {
	fmt.Printf("SFTP password for %s: ", username)
	passwordBytes, err := terminal.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", errors.WithContext(err, "read password")
	}
	return string(passwordBytes), nil
}
