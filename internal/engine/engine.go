// Package engine manages the lifecycle of the vendor Hyper engine process
// and the database/sql connections into it. The engine is an opaque,
// trusted collaborator: it is launched once per invocation, queried over
// its Postgres-flavored SQL surface, and shut down unconditionally.
package engine

import (
	"database/sql"
	"fmt"
	"net"
	"os"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

// CreateMode controls what happens to the target database on connect.
type CreateMode string

const (
	// CreateNone opens an existing file read-only style. Read paths use
	// this so the tool can never mutate a file it inspects.
	CreateNone CreateMode = "none"
	// CreateAndReplace creates the file, replacing any previous contents.
	CreateAndReplace CreateMode = "create_and_replace"
)

// Config holds the engine launch parameters, resolved from viper by the
// CLI layer.
type Config struct {
	Binary       string        // hyperd binary, default "hyperd"
	StartTimeout time.Duration // readiness deadline
}

func (c Config) withDefaults() Config {
	if c.Binary == "" {
		c.Binary = "hyperd"
	}
	if c.StartTimeout <= 0 {
		c.StartTimeout = 15 * time.Second
	}
	return c
}

// Process is a running engine instance. It owns the child process and the
// scratch directory the engine writes its lock files into.
type Process struct {
	cmd    *exec.Cmd
	port   int
	dir    string
	logger *zap.Logger
}

// Start launches the engine on a free loopback port with telemetry
// disabled and waits until it accepts connections. The caller must Close
// the returned process on every exit path.
func Start(cfg Config, logger *zap.Logger) (*Process, error) {
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}

	port, err := freePort()
	if err != nil {
		return nil, fmt.Errorf("failed to allocate engine port: %w", err)
	}

	dir, err := os.MkdirTemp("", "hyper-inspector-")
	if err != nil {
		return nil, fmt.Errorf("failed to create engine scratch dir: %w", err)
	}

	cmd := exec.Command(cfg.Binary, launchArgs(port)...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "HYPER_TELEMETRY=disabled")
	if err := cmd.Start(); err != nil {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("failed to start hyper engine (%s): %w", cfg.Binary, err)
	}

	p := &Process{cmd: cmd, port: port, dir: dir, logger: logger}
	if err := p.waitReady(cfg.StartTimeout); err != nil {
		p.Close()
		return nil, err
	}
	logger.Debug("hyper engine ready", zap.Int("port", port))
	return p, nil
}

func launchArgs(port int) []string {
	return []string{
		"run",
		"--skip-license-check",
		"--no-password",
		"--listen-connection", fmt.Sprintf("tab.tcp://127.0.0.1:%d", port),
	}
}

func freePort() (int, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}

// waitReady polls the engine port until it accepts a TCP connection or
// the deadline passes.
func (p *Process) waitReady(timeout time.Duration) error {
	addr := fmt.Sprintf("127.0.0.1:%d", p.port)
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		conn, err := net.DialTimeout("tcp", addr, 250*time.Millisecond)
		if err == nil {
			conn.Close()
			return nil
		}
		time.Sleep(100 * time.Millisecond)
	}
	return fmt.Errorf("hyper engine did not become ready within %s", timeout)
}

// Open connects to one database file through the running engine. The
// returned handle is limited to a single connection: every query of an
// invocation runs sequentially over the same session.
func (p *Process) Open(database string, mode CreateMode) (*sql.DB, error) {
	db, err := sql.Open("postgres", p.DSN(database, mode))
	if err != nil {
		return nil, fmt.Errorf("failed to open connection to %s: %w", database, err)
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to %s: %w", database, err)
	}
	return db, nil
}

// DSN builds the lib/pq connection string for one database file.
func (p *Process) DSN(database string, mode CreateMode) string {
	return fmt.Sprintf("host=127.0.0.1 port=%d dbname=%s sslmode=disable options='--create-mode=%s'",
		p.port, quoteDSNValue(database), mode)
}

// Port is the loopback port the engine listens on.
func (p *Process) Port() int { return p.port }

// Close stops the engine and removes its scratch directory. Safe to call
// more than once.
func (p *Process) Close() error {
	if p.cmd == nil {
		return nil
	}
	cmd := p.cmd
	p.cmd = nil

	var err error
	if cmd.Process != nil {
		if err = cmd.Process.Kill(); err == nil {
			_, err = cmd.Process.Wait()
		}
	}
	if p.dir != "" {
		os.RemoveAll(p.dir)
		p.dir = ""
	}
	if err != nil {
		p.logger.Warn("hyper engine shutdown", zap.Error(err))
	}
	return err
}

// quoteDSNValue wraps a keyword/value DSN value in single quotes when it
// contains characters lib/pq would otherwise split on.
func quoteDSNValue(v string) string {
	if v != "" && !strings.ContainsAny(v, " '\\") {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}
