// nrfdfu updates firmware on a BLE peripheral running the nRF Secure DFU
// bootloader from a firmware update package (.zip).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/moffa90/go-nrfdfu/dfu"
	"github.com/moffa90/go-nrfdfu/nrfpkg"
	"github.com/moffa90/go-nrfdfu/protocol"
)

const version = "0.2.0"

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "usage: %s [options]\n\n", os.Args[0])
	fmt.Fprintf(out, "Updates firmware on a BLE peripheral running the nRF Secure DFU bootloader.\n\n")
	fmt.Fprintf(out, "  -n, --name NAME    advertised name of the target device\n")
	fmt.Fprintf(out, "  -a, --addr ADDR    address of the target device\n")
	fmt.Fprintf(out, "  -p, --pkg PATH     firmware update package (.zip)\n")
	fmt.Fprintf(out, "  -c, --config FILE  TOML configuration file\n")
	fmt.Fprintf(out, "  -v, --verbose      enable debug logging\n")
	fmt.Fprintf(out, "  -V, --version      print version and exit\n")
	fmt.Fprintf(out, "  -h, --help         print this help and exit\n")
	fmt.Fprintf(out, "\nAt least one of --name or --addr is required, together with --pkg.\n")
}

func main() {
	var (
		name        string
		addr        string
		pkgPath     string
		confPath    string
		verbose     bool
		showVersion bool
	)

	flag.StringVar(&name, "n", "", "advertised device name")
	flag.StringVar(&name, "name", "", "advertised device name")
	flag.StringVar(&addr, "a", "", "device address")
	flag.StringVar(&addr, "addr", "", "device address")
	flag.StringVar(&pkgPath, "p", "", "firmware update package")
	flag.StringVar(&pkgPath, "pkg", "", "firmware update package")
	flag.StringVar(&confPath, "c", "", "configuration file")
	flag.StringVar(&confPath, "config", "", "configuration file")
	flag.BoolVar(&verbose, "v", false, "enable debug logging")
	flag.BoolVar(&verbose, "verbose", false, "enable debug logging")
	flag.BoolVar(&showVersion, "V", false, "print version and exit")
	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.Usage = usage
	flag.Parse()

	if showVersion {
		fmt.Printf("nrfdfu %s\n", version)
		return
	}

	if (name == "" && addr == "") || pkgPath == "" {
		usage()
		os.Exit(1)
	}

	conf, err := loadConfiguration(confPath)
	if err != nil {
		log.WithField("error", err).Fatal("Failed to load configuration")
	}
	if verbose {
		log.SetLevel(log.DebugLevel)
	}

	pkg, err := nrfpkg.Parse(pkgPath)
	if err != nil {
		log.WithFields(log.Fields{
			"package": pkgPath,
			"error":   err,
		}).Fatal("Failed to load firmware package")
	}
	log.WithField("images", len(pkg.Units)).Info("Loaded firmware package")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := adapter.Enable(); err != nil {
		log.WithField("error", err).Fatal("Could not enable the BLE adapter")
	}

	for i, unit := range pkg.Units {
		if err := runUnit(ctx, unit, name, addr, conf); err != nil {
			log.WithFields(log.Fields{
				"image": unit.Kind,
				"error": err,
			}).Fatal("Firmware update failed")
		}

		if i < len(pkg.Units)-1 {
			// The device activates the freshly transferred softdevice or
			// bootloader and reboots before it accepts the next image.
			log.Info("Waiting for the device to reboot")
			select {
			case <-time.After(conf.Dfu.rebootDelay()):
			case <-ctx.Done():
				log.Fatal("Interrupted")
			}
		}
	}

	log.Info("Firmware update complete")
}

// runUnit connects to the target and transfers a single image.
func runUnit(ctx context.Context, unit nrfpkg.TransferUnit, name, addr string, conf tomlConfig) error {
	transport, err := connect(name, addr, conf)
	if err != nil {
		return err
	}

	session := dfu.New(transport, conf.sessionOptions(printProgress)...)
	if err := session.Run(ctx, unit); err != nil {
		fmt.Println()
		return err
	}
	return nil
}

// printProgress redraws a single progress line for the firmware image.
func printProgress(p dfu.Progress) {
	if p.Object != protocol.ObjectData || p.TotalBytes == 0 {
		return
	}

	fmt.Printf("\rUploading %d/%d bytes (%d%%)...", p.BytesSent, p.TotalBytes, p.BytesSent*100/p.TotalBytes)
	if p.BytesSent == p.TotalBytes {
		fmt.Println()
	}
}
