package printer

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Job is one rendered document handed to a printer.
type Job struct {
	// Name identifies the job, e.g. the bill number. Used for spool file names.
	Name string
	// Format is "escpos" or "pdf".
	Format string
	Data   []byte
}

// Printer delivers rendered documents to an output device.
type Printer interface {
	// Print sends the job to the device.
	Print(job Job) error
	// IsConnected returns true if the device is reachable.
	IsConnected() bool
}

// --- USB Printer (writes to device file, e.g. /dev/usb/lp0) ---

type usbPrinter struct {
	path string
}

// NewUSBPrinter creates a printer that writes raw bytes to a USB device file.
func NewUSBPrinter(devicePath string) Printer {
	return &usbPrinter{path: devicePath}
}

func (p *usbPrinter) Print(job Job) error {
	f, err := os.OpenFile(p.path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("printer: failed to open USB device %s: %w", p.path, err)
	}
	defer f.Close()

	if _, err := f.Write(job.Data); err != nil {
		return fmt.Errorf("printer: failed to write to USB device %s: %w", p.path, err)
	}
	return nil
}

func (p *usbPrinter) IsConnected() bool {
	_, err := os.Stat(p.path)
	return err == nil
}

// --- Network Printer (raw TCP, e.g. 192.168.1.100:9100) ---

type networkPrinter struct {
	address string
	timeout time.Duration
}

// NewNetworkPrinter creates a printer that connects via TCP.
// Address should include port, e.g. "192.168.1.100:9100".
func NewNetworkPrinter(address string) Printer {
	return &networkPrinter{
		address: address,
		timeout: 5 * time.Second,
	}
}

func (p *networkPrinter) Print(job Job) error {
	conn, err := net.DialTimeout("tcp", p.address, p.timeout)
	if err != nil {
		return fmt.Errorf("printer: failed to connect to %s: %w", p.address, err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))

	if _, err := conn.Write(job.Data); err != nil {
		return fmt.Errorf("printer: failed to write to %s: %w", p.address, err)
	}
	return nil
}

func (p *networkPrinter) IsConnected() bool {
	conn, err := net.DialTimeout("tcp", p.address, 2*time.Second)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// --- Spool Printer (writes each job to a file for a print daemon or manual printing) ---

type spoolPrinter struct {
	dir string
}

// NewSpoolPrinter creates a printer that writes each job as a file in dir.
func NewSpoolPrinter(dir string) Printer {
	return &spoolPrinter{dir: dir}
}

func (p *spoolPrinter) Print(job Job) error {
	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return fmt.Errorf("printer: failed to create spool dir %s: %w", p.dir, err)
	}
	path := filepath.Join(p.dir, spoolFileName(job))
	if err := os.WriteFile(path, job.Data, 0o644); err != nil {
		return fmt.Errorf("printer: failed to write spool file %s: %w", path, err)
	}
	return nil
}

func (p *spoolPrinter) IsConnected() bool {
	info, err := os.Stat(p.dir)
	return err == nil && info.IsDir()
}

func spoolFileName(job Job) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, job.Name)
	if name == "" {
		name = "job"
	}
	ext := ".bin"
	if job.Format == FormatPDF {
		ext = ".pdf"
	}
	return name + ext
}

// --- Null Printer (no-op, used when no printer is configured) ---

type nullPrinter struct{}

// NewNullPrinter creates a no-op printer for environments without hardware.
func NewNullPrinter() Printer {
	return &nullPrinter{}
}

func (p *nullPrinter) Print(job Job) error {
	return nil
}

func (p *nullPrinter) IsConnected() bool {
	return false
}

// Output formats.
const (
	FormatESCPOS = "escpos"
	FormatPDF    = "pdf"
)

// NewPrinterFromConfig creates the appropriate Printer based on type.
//
//	printerType: "usb", "network", "spool", or "none"
//	usbPath: device path for USB printers (e.g. "/dev/usb/lp0")
//	address: TCP address for network printers (e.g. "192.168.1.100:9100")
//	spoolDir: output directory for the spool printer
func NewPrinterFromConfig(printerType, usbPath, address, spoolDir string) (Printer, error) {
	switch printerType {
	case "usb":
		if usbPath == "" {
			return nil, fmt.Errorf("printer: USB path is required for USB printer type")
		}
		return NewUSBPrinter(usbPath), nil
	case "network":
		if address == "" {
			return nil, fmt.Errorf("printer: address is required for network printer type")
		}
		return NewNetworkPrinter(address), nil
	case "spool":
		if spoolDir == "" {
			return nil, fmt.Errorf("printer: spool dir is required for spool printer type")
		}
		return NewSpoolPrinter(spoolDir), nil
	case "none", "":
		return NewNullPrinter(), nil
	default:
		return nil, fmt.Errorf("printer: unknown printer type %q (use usb, network, spool, or none)", printerType)
	}
}
