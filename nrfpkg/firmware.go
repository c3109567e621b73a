package nrfpkg

import (
	"errors"

	"github.com/hashicorp/go-multierror"
)

// ImageKind identifies the firmware role a transfer unit updates.
type ImageKind byte

const (
	// SoftDevice is the Nordic wireless protocol stack
	SoftDevice ImageKind = iota

	// Bootloader is the DFU bootloader itself
	Bootloader

	// SoftDeviceBootloader is a combined softdevice plus bootloader image
	SoftDeviceBootloader

	// Application is the user application
	Application
)

// String returns the manifest role name for the image kind.
func (k ImageKind) String() string {
	switch k {
	case SoftDevice:
		return "softdevice"
	case Bootloader:
		return "bootloader"
	case SoftDeviceBootloader:
		return "softdevice_bootloader"
	case Application:
		return "application"
	default:
		return "unknown"
	}
}

// TransferUnit is one firmware role extracted from the package: the signed
// init command and the binary image, transferred as the bootloader's
// command and data objects respectively.
type TransferUnit struct {
	// Kind is the firmware role this unit updates
	Kind ImageKind

	// InitData is the signed init command (the .dat entry)
	InitData []byte

	// FirmwareData is the binary image (the .bin entry)
	FirmwareData []byte
}

// CheckValid returns an error for each violated transfer unit invariant.
func (u TransferUnit) CheckValid() error {
	var errs *multierror.Error

	if len(u.InitData) == 0 {
		errs = multierror.Append(errs, errors.New("init data must not be empty"))
	}
	if len(u.FirmwareData) == 0 {
		errs = multierror.Append(errs, errors.New("firmware data must not be empty"))
	}
	if u.Kind > Application {
		errs = multierror.Append(errs, errors.New("unknown image kind"))
	}

	return errs.ErrorOrNil()
}

// FirmwarePackage is the ordered sequence of transfer units extracted from
// a firmware update package. Units must be transferred in order; the
// package is immutable once built.
type FirmwarePackage struct {
	Units []TransferUnit
}

// CheckValid returns an error for each violated package invariant.
func (p *FirmwarePackage) CheckValid() error {
	var errs *multierror.Error

	if len(p.Units) == 0 {
		errs = multierror.Append(errs, errors.New("package contains no transfer units"))
	}
	for _, unit := range p.Units {
		if err := unit.CheckValid(); err != nil {
			errs = multierror.Append(errs, err)
		}
	}

	// The device may need to reboot into an updated softdevice or
	// bootloader before it can accept the application image.
	for i, unit := range p.Units {
		if unit.Kind == Application && i != len(p.Units)-1 {
			errs = multierror.Append(errs, errors.New("application unit must be ordered last"))
		}
	}

	return errs.ErrorOrNil()
}
