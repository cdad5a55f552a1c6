package remote

import (
	"io"
	"net"
	"os"
	"strconv"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"

	"github.com/ClasicRando/sftp-sync/pkg/errors"
)

// Client is an SFTP session on top of a single SSH connection. It implements
// FS for the traversal phase, and can open additional independent SFTP
// channels on the same connection for the transfer workers.
type Client struct {
	conn *ssh.Client
	sftp *sftp.Client
}

// Dial connects to the given host, authenticates with the password, and
// opens the initial SFTP channel.
func Dial(host string, port int, username, password string) (*Client, error) {
	sshConfig := &ssh.ClientConfig{
		User: username,
		Auth: []ssh.AuthMethod{
			ssh.Password(password),
		},
		// Host key checking is skipped since the tool is pointed at hosts
		// the user already trusts enough to mirror files from.
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
	}

	addr := net.JoinHostPort(host, strconv.Itoa(port))
	conn, err := ssh.Dial("tcp", addr, sshConfig)
	if err != nil {
		return nil, errors.WithContext(err, "dial")
	}

	sftpClient, err := sftp.NewClient(conn)
	if err != nil {
		conn.Close()
		return nil, errors.WithContext(err, "open sftp channel")
	}

	return &Client{conn: conn, sftp: sftpClient}, nil
}

// ReadDir implements FS.
func (c *Client) ReadDir(dir string) ([]Entry, error) {
	infos, err := c.sftp.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	return toEntries(infos), nil
}

// Open implements FS.
func (c *Client) Open(path string) (io.ReadCloser, error) {
	return c.sftp.Open(path)
}

// Channel opens an additional SFTP channel on the same SSH connection.
// Channels are independent of each other at the protocol level, so each
// transfer worker can read through its own without interleaving requests.
func (c *Client) Channel() (FS, error) {
	sftpClient, err := sftp.NewClient(c.conn)
	if err != nil {
		return nil, errors.WithContext(err, "open sftp channel")
	}
	return &channel{sftp: sftpClient}, nil
}

// Close tears down the SFTP channel and the SSH connection.
func (c *Client) Close() error {
	if err := c.sftp.Close(); err != nil {
		c.conn.Close()
		return err
	}
	return c.conn.Close()
}

// channel is a secondary SFTP channel owned by a Pool.
type channel struct {
	sftp *sftp.Client
}

func (c *channel) ReadDir(dir string) ([]Entry, error) {
	infos, err := c.sftp.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	return toEntries(infos), nil
}

func (c *channel) Open(path string) (io.ReadCloser, error) {
	return c.sftp.Open(path)
}

func (c *channel) Close() error {
	return c.sftp.Close()
}

func toEntries(infos []os.FileInfo) []Entry {
	entries := make([]Entry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, Entry{
			Name: info.Name(),
			Dir:  info.IsDir(),
			Size: info.Size(),
		})
	}
	return entries
}
