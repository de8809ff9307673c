package adapter

import (
	"fmt"
	"log/slog"
	"net/url"
	"os/exec"
	"runtime"
)

// Launcher opens trailer links in an external program
type Launcher struct {
	command string   // configured program, empty for system default
	args    []string // additional arguments placed before the URL
	logger  *slog.Logger

	goos     string
	lookPath func(file string) (string, error)
	start    func(name string, args ...string) error
}

// NewLauncher creates a Launcher. An empty command uses the system default
// handler (open, xdg-open or start).
func NewLauncher(command string, args []string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		command:  command,
		args:     args,
		logger:   logger,
		goos:     runtime.GOOS,
		lookPath: exec.LookPath,
		start:    startDetached,
	}
}

// startDetached runs a command without waiting for it to exit
func startDetached(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// Open opens link in the configured program or system default
func (l *Launcher) Open(link string) error {
	if err := checkLink(link); err != nil {
		return err
	}

	// Tier 1: User configured a specific program
	if l.command != "" {
		l.logger.Info("using configured opener", "command", l.command)
		return l.openConfigured(link)
	}

	// Tier 2: System default (open/xdg-open/start)
	return l.openDefault(link)
}

// checkLink accepts only absolute http(s) links so catalog data cannot
// smuggle in file paths or command flags
func checkLink(link string) error {
	u, err := url.Parse(link)
	if err != nil {
		return fmt.Errorf("invalid link %q: %w", link, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid link %q: unsupported scheme", link)
	}
	return nil
}

func (l *Launcher) openConfigured(link string) error {
	args := append([]string{}, l.args...)

	// On macOS, try to launch GUI apps with 'open -a' if command not in PATH
	if l.goos == "darwin" {
		if _, err := l.lookPath(l.command); err != nil {
			cmdArgs := []string{"-a", l.command}
			if len(args) > 0 {
				cmdArgs = append(cmdArgs, "--args")
				cmdArgs = append(cmdArgs, args...)
			}
			cmdArgs = append(cmdArgs, link) // URL at the end
			l.logger.Info("using macOS 'open -a' to launch GUI app", "app", l.command, "args", cmdArgs)
			return l.start("open", cmdArgs...)
		}
	}

	args = append(args, link)
	l.logger.Info("launching opener", "command", l.command, "args", args)
	if err := l.start(l.command, args...); err != nil {
		return fmt.Errorf("failed to start %s: %w", l.command, err)
	}
	return nil
}

// openDefault opens the URL using the system default handler
func (l *Launcher) openDefault(link string) error {
	var name string
	var args []string

	switch l.goos {
	case "darwin":
		name, args = "open", []string{link}
	case "windows":
		name, args = "cmd", []string{"/c", "start", "", link}
	default:
		// Linux and other Unix-like systems
		name, args = "xdg-open", []string{link}
	}

	l.logger.Info("launching with system default", "os", l.goos, "url", link)
	if err := l.start(name, args...); err != nil {
		return fmt.Errorf("failed to open %s: %w", link, err)
	}
	return nil
}
