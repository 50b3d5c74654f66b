// Package deploy rebuilds the published sites on their host over SSH.
package deploy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"

	"SEOAgent/internal/ports"
)

const (
	logPreviewRunes = 200
	defaultTimeout  = 2 * time.Minute
)

// DefaultCommands rebuild a Next.js checkout and restart its pm2 process.
// {path} is the target directory, {app} its base name.
var DefaultCommands = []string{
	"cd {path} && git pull origin main 2>&1 || echo 'No git changes'",
	"cd {path} && npm install 2>&1",
	"cd {path} && npm run build 2>&1",
	"pm2 restart {app} 2>&1 || pm2 start npm --name {app} -- start",
}

// Config describes the SSH endpoint. Credentials come from configuration only.
type Config struct {
	Host                  string
	Port                  int
	User                  string
	Password              string
	PrivateKeyPath        string
	KnownHostsPath        string
	InsecureIgnoreHostKey bool
	Commands              []string
	Timeout               time.Duration
}

// Runner executes one remote command and returns its combined output.
type Runner interface {
	Run(ctx context.Context, command string) (string, error)
	Close() error
}

// DialFunc opens a Runner for one deploy.
type DialFunc func(ctx context.Context) (Runner, error)

// Deployer runs the command list against each target directory in order.
type Deployer struct {
	dial     DialFunc
	commands []string
	timeout  time.Duration
	logger   *slog.Logger
}

var _ ports.Deployer = (*Deployer)(nil)

// NewDeployer builds a deployer over an arbitrary dialer.
func NewDeployer(dial DialFunc, commands []string, timeout time.Duration, logger *slog.Logger) *Deployer {
	if len(commands) == 0 {
		commands = DefaultCommands
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Deployer{dial: dial, commands: commands, timeout: timeout, logger: logger}
}

// NewSSHDeployer validates cfg and returns a deployer that dials cfg.Host.
func NewSSHDeployer(cfg Config, logger *slog.Logger) (*Deployer, error) {
	clientCfg, err := clientConfig(cfg)
	if err != nil {
		return nil, err
	}
	port := cfg.Port
	if port == 0 {
		port = 22
	}
	addr := net.JoinHostPort(cfg.Host, fmt.Sprint(port))

	dial := func(ctx context.Context) (Runner, error) {
		r, err := dialSSH(ctx, addr, clientCfg)
		if err != nil {
			return nil, err
		}
		return r, nil
	}
	return NewDeployer(dial, cfg.Commands, cfg.Timeout, logger), nil
}

// Deploy stops at the first failing command; the log holds every step so far.
func (d *Deployer) Deploy(ctx context.Context, targets []string) ([]string, error) {
	var lines []string

	runner, err := d.dial(ctx)
	if err != nil {
		lines = append(lines, fmt.Sprintf("connect: %v", err))
		return lines, fmt.Errorf("connect: %w", err)
	}
	defer runner.Close()

	for _, target := range targets {
		app := path.Base(target)
		log := d.logger.With("target", target)
		log.Info("deploying target")

		for _, tmpl := range d.commands {
			command := strings.NewReplacer("{path}", target, "{app}", app).Replace(tmpl)

			runCtx, cancel := context.WithTimeout(ctx, d.timeout)
			out, err := runner.Run(runCtx, command)
			cancel()

			lines = append(lines, fmt.Sprintf("[%s] %s: %s", app, command, preview(out)))
			if err != nil {
				lines = append(lines, fmt.Sprintf("[%s] failed: %v", app, err))
				log.Warn("deploy command failed", "command", command, "error", err)
				return lines, fmt.Errorf("deploy %s: %w", target, err)
			}
			log.Debug("deploy command finished", "command", command)
		}

		lines = append(lines, fmt.Sprintf("[%s] deployed", app))
		log.Info("target deployed")
	}
	return lines, nil
}

func preview(out string) string {
	out = strings.TrimSpace(out)
	if utf8.RuneCountInString(out) <= logPreviewRunes {
		return out
	}
	return string([]rune(out)[:logPreviewRunes]) + "..."
}

func clientConfig(cfg Config) (*ssh.ClientConfig, error) {
	if cfg.Host == "" || cfg.User == "" {
		return nil, errors.New("deploy host and user are required")
	}

	var auth []ssh.AuthMethod
	if cfg.PrivateKeyPath != "" {
		key, err := os.ReadFile(cfg.PrivateKeyPath)
		if err != nil {
			return nil, fmt.Errorf("read private key: %w", err)
		}
		signer, err := ssh.ParsePrivateKey(key)
		if err != nil {
			return nil, fmt.Errorf("parse private key: %w", err)
		}
		auth = append(auth, ssh.PublicKeys(signer))
	}
	if cfg.Password != "" {
		auth = append(auth, ssh.Password(cfg.Password))
	}
	if len(auth) == 0 {
		return nil, errors.New("deploy needs a password or a private key")
	}

	var hostKey ssh.HostKeyCallback
	switch {
	case cfg.KnownHostsPath != "":
		cb, err := knownhosts.New(cfg.KnownHostsPath)
		if err != nil {
			return nil, fmt.Errorf("load known hosts: %w", err)
		}
		hostKey = cb
	case cfg.InsecureIgnoreHostKey:
		hostKey = ssh.InsecureIgnoreHostKey()
	default:
		return nil, errors.New("deploy needs knownHostsPath or insecureIgnoreHostKey")
	}

	return &ssh.ClientConfig{
		User:            cfg.User,
		Auth:            auth,
		HostKeyCallback: hostKey,
		Timeout:         30 * time.Second,
	}, nil
}

type sshRunner struct {
	client *ssh.Client
}

func dialSSH(ctx context.Context, addr string, cfg *ssh.ClientConfig) (*sshRunner, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	c, chans, reqs, err := ssh.NewClientConn(conn, addr, cfg)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ssh handshake %s: %w", addr, err)
	}
	return &sshRunner{client: ssh.NewClient(c, chans, reqs)}, nil
}

func (r *sshRunner) Run(ctx context.Context, command string) (string, error) {
	session, err := r.client.NewSession()
	if err != nil {
		return "", fmt.Errorf("open session: %w", err)
	}
	defer session.Close()

	type result struct {
		out []byte
		err error
	}
	done := make(chan result, 1)
	go func() {
		out, err := session.CombinedOutput(command)
		done <- result{out: out, err: err}
	}()

	select {
	case <-ctx.Done():
		_ = session.Signal(ssh.SIGKILL)
		return "", ctx.Err()
	case res := <-done:
		return string(res.out), res.err
	}
}

func (r *sshRunner) Close() error {
	return r.client.Close()
}
