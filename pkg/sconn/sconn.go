// Package sconn bootstraps the remote side of a run: one SSH connection,
// authenticated with the agent or default identity files and verified
// against the user's known hosts, carrying one SFTP session rooted at the
// target's base directory.
package sconn

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mtth/igloo/pkg/cerr"
	"github.com/mtth/igloo/pkg/conf"
	"github.com/mtth/igloo/pkg/slog"
	"github.com/mtth/igloo/pkg/target"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
	"golang.org/x/crypto/ssh/knownhosts"
)

// Config carries everything needed to open a connection.
type Config struct {
	Target        target.Target
	HostKeysPath  string
	IdentityPaths []string
	Timeout       time.Duration
	Logger        *slog.Logger
}

// Conn owns the SSH client and its SFTP session. It is held by exactly one
// session for the duration of a run and closed exactly once.
type Conn struct {
	sshCli    *ssh.Client
	sftpCli   *sftp.Client
	baseDir   string
	closeOnce sync.Once
}

// defaultIdentityPaths lists the key files tried when the agent is not
// available, most preferred first.
func defaultIdentityPaths() []string {
	userHome, hErr := os.UserHomeDir()
	if hErr != nil {
		return nil
	}
	return []string{
		filepath.Join(userHome, ".ssh", "id_ed25519"),
		filepath.Join(userHome, ".ssh", "id_rsa"),
	}
}

// Open dials the target host, authenticates and starts an SFTP session.
// The remote base directory is validated before any transfer begins.
func Open(cfg *Config) (*Conn, error) {
	tgt := cfg.Target
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = conf.Timeout
	}

	hostKeysPath := cfg.HostKeysPath
	if hostKeysPath == "" {
		hostKeysPath = conf.GetKnownHostsPath()
	}
	hostKeyCallback, khErr := knownhosts.New(hostKeysPath)
	if khErr != nil {
		return nil, cerr.Wrap(cerr.HostKeysUnavailable, khErr, "unable to load host keys from file %q", hostKeysPath)
	}

	identityPaths := cfg.IdentityPaths
	if identityPaths == nil {
		identityPaths = defaultIdentityPaths()
	}
	authMethods := buildAuthMethods(identityPaths, cfg.Logger)
	if len(authMethods) == 0 {
		return nil, cerr.New(cerr.AuthenticationFailed, "no usable credentials, need an ssh agent or an identity file")
	}

	sshConfig := &ssh.ClientConfig{
		User:            tgt.User,
		Auth:            authMethods,
		HostKeyCallback: hostKeyCallback,
		Timeout:         timeout,
	}

	addr := net.JoinHostPort(tgt.Host, conf.DefaultSSHPort)
	sshCli, dErr := ssh.Dial("tcp", addr, sshConfig)
	if dErr != nil {
		if strings.Contains(dErr.Error(), "unable to authenticate") {
			return nil, cerr.Wrap(cerr.AuthenticationFailed, dErr, "unable to authenticate as %q on %q", tgt.User, tgt.Host)
		}
		return nil, cerr.Wrap(cerr.ConnectionFailed, dErr, "unable to connect to %q@%q", tgt.User, tgt.Host)
	}

	sftpCli, sErr := sftp.NewClient(sshCli)
	if sErr != nil {
		_ = sshCli.Close()
		return nil, cerr.Wrap(cerr.ConnectionFailed, sErr, "unable to start sftp session on %q", tgt.Host)
	}

	conn := &Conn{
		sshCli:  sshCli,
		sftpCli: sftpCli,
		baseDir: tgt.Dir,
	}
	if vErr := conn.validateBaseDir(); vErr != nil {
		_ = conn.Close()
		return nil, vErr
	}
	return conn, nil
}

func (c *Conn) validateBaseDir() error {
	fi, sErr := c.sftpCli.Stat(c.baseDir)
	if sErr != nil {
		return cerr.Wrap(cerr.InvalidRemoteBase, sErr, "invalid remote folder %q", c.baseDir)
	}
	if !fi.IsDir() {
		return cerr.New(cerr.InvalidRemoteBase, "invalid remote folder %q, not a directory", c.baseDir)
	}
	return nil
}

// buildAuthMethods collects credentials from the running agent and from
// identity files. Unreadable keys are skipped, authentication fails later
// only if nothing at all is usable.
func buildAuthMethods(identityPaths []string, logger *slog.Logger) []ssh.AuthMethod {
	var methods []ssh.AuthMethod

	if sock := os.Getenv("SSH_AUTH_SOCK"); sock != "" {
		if agentConn, aErr := net.Dial("unix", sock); aErr == nil {
			agentCli := agent.NewClient(agentConn)
			methods = append(methods, ssh.PublicKeysCallback(agentCli.Signers))
		} else if logger != nil {
			logger.Debugf("Agent socket unreachable - %v", aErr)
		}
	}

	var signers []ssh.Signer
	for _, keyPath := range identityPaths {
		keyData, rErr := os.ReadFile(keyPath)
		if rErr != nil {
			continue
		}
		signer, pErr := ssh.ParsePrivateKey(keyData)
		if pErr != nil {
			if logger != nil {
				logger.Debugf("Skipping identity %q - %v", keyPath, pErr)
			}
			continue
		}
		signers = append(signers, signer)
	}
	if len(signers) > 0 {
		methods = append(methods, ssh.PublicKeys(signers...))
	}

	return methods
}

// Client exposes the SFTP session.
func (c *Conn) Client() *sftp.Client {
	return c.sftpCli
}

// BaseDir returns the validated remote base directory.
func (c *Conn) BaseDir() string {
	return c.baseDir
}

// Close tears down the SFTP session and the SSH connection. Safe to call
// more than once.
func (c *Conn) Close() error {
	c.closeOnce.Do(func() {
		if c.sftpCli != nil {
			_ = c.sftpCli.Close()
		}
		if c.sshCli != nil {
			_ = c.sshCli.Close()
		}
	})
	return nil
}

// String describes the connection endpoint for logs.
func (c *Conn) String() string {
	if c.sshCli == nil {
		return "<closed>"
	}
	return fmt.Sprintf("%s:%s", c.sshCli.RemoteAddr(), c.baseDir)
}
