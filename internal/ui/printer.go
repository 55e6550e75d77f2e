package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Printer renders the terminal UI fragments used by the bootstrap.
type Printer struct {
	success *color.Color
	info    *color.Color
	warn    *color.Color
	error   *color.Color
}

// NewPrinter constructs a Printer with colour automatically enabled for TTY outputs.
func NewPrinter() *Printer {
	enabled := supportsColor(os.Stdout) && os.Getenv("NO_COLOR") == ""

	p := &Printer{
		success: color.New(color.FgGreen, color.Bold),
		info:    color.New(color.FgBlue, color.Bold),
		warn:    color.New(color.FgYellow, color.Bold),
		error:   color.New(color.FgRed, color.Bold),
	}

	if !enabled {
		p.success.DisableColor()
		p.info.DisableColor()
		p.warn.DisableColor()
		p.error.DisableColor()
	}

	return p
}

// PrintBanner renders the application banner.
func (p *Printer) PrintBanner() {
	lines := []string{
		"=========================================================",
		"   LLB - Lusty Library Bootstrap",
		"",
		"   Brings this machine from nothing installed to",
		"   'library setup service running' in one pass.",
		"",
		"   Require: Debian family (amd64 && arm64)",
		"=========================================================",
	}

	for _, line := range lines {
		p.success.Println(line)
	}
}

// PrintSeparator prints a repeated character separator.
func (p *Printer) PrintSeparator(char string, length int) {
	if length <= 0 {
		return
	}
	fmt.Println(strings.Repeat(char, length))
}

// PrintServiceStatus renders a status indicator line for the given unit.
func (p *Printer) PrintServiceStatus(unit, active, enabled string) {
	var mark string
	switch active {
	case "active":
		mark = p.success.Sprint("✓")
	case "inactive", "failed":
		mark = p.error.Sprint("✕")
	default:
		mark = p.warn.Sprint("!")
	}

	fmt.Printf("[ %s ] %s (%s, %s)\n", mark, unit, active, enabled)
}

// PrintInstructions renders the post-install usage instructions.
func (p *Printer) PrintInstructions(unit string, port int) {
	p.PrintSeparator("-", 57)
	p.success.Println("Library setup service is installed and running.")
	fmt.Println()

	fmt.Printf("%s  %s\n",
		p.info.Sprint("Setup UI:"),
		p.warn.Sprintf("http://<device-ip>:%d/setup", port))
	fmt.Printf("%s   %s\n",
		p.info.Sprint("Service:"),
		fmt.Sprintf("systemctl status %s", unit))
	fmt.Printf("%s      %s\n",
		p.info.Sprint("Logs:"),
		fmt.Sprintf("journalctl -u %s -f", unit))

	fmt.Println()
	fmt.Println("Re-running this tool is safe: packages, checkout and")
	fmt.Println("dependencies are refreshed in place.")
	p.PrintSeparator("-", 57)
}

func supportsColor(w *os.File) bool {
	return term.IsTerminal(int(w.Fd()))
}
