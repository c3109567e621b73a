// Package nrfpkg parses firmware update packages produced by the Nordic
// packaging tool.
//
// A package is a zip archive containing a manifest.json plus, per firmware
// role (softdevice, bootloader, combined softdevice+bootloader,
// application), a signed init command (.dat) and a binary image (.bin).
// Parsing yields a FirmwarePackage whose TransferUnits are ordered so that
// softdevice and bootloader class images precede the application image.
//
// The package has no transport dependency and can be tested against
// synthetic in-memory archives via ParseReader.
package nrfpkg
