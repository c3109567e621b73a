package nrfpkg

import (
	"archive/zip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// ManifestFileName is the archive entry naming the package manifest.
const ManifestFileName = "manifest.json"

// manifestFile mirrors the JSON document produced by the Nordic packaging
// tool. Each present role references a pair of archive entries.
type manifestFile struct {
	Manifest manifestRoles `json:"manifest"`
}

type manifestRoles struct {
	SoftDeviceBootloader *manifestImage `json:"softdevice_bootloader"`
	SoftDevice           *manifestImage `json:"softdevice"`
	Bootloader           *manifestImage `json:"bootloader"`
	Application          *manifestImage `json:"application"`
}

type manifestImage struct {
	BinFile string `json:"bin_file"`
	DatFile string `json:"dat_file"`
}

// Parse loads a firmware update package from the given file path.
// Returns the ordered transfer units or a typed package error.
//
// Example:
//
//	pkg, err := nrfpkg.Parse("app_dfu_package.zip")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d image(s) to transfer\n", len(pkg.Units))
func Parse(path string) (*FirmwarePackage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open package: %w", err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat package: %w", err)
	}

	return ParseReader(f, info.Size())
}

// ParseReader loads a firmware update package from any io.ReaderAt.
// This is useful for testing and reading from non-file sources.
func ParseReader(r io.ReaderAt, size int64) (*FirmwarePackage, error) {
	archive, err := zip.NewReader(r, size)
	if err != nil {
		return nil, &NotAnArchiveError{Err: err}
	}

	manifest, err := readManifest(archive)
	if err != nil {
		return nil, err
	}

	// Softdevice and bootloader class images first: the device may reboot
	// into them before it can accept the application.
	roles := []struct {
		kind  ImageKind
		image *manifestImage
	}{
		{SoftDeviceBootloader, manifest.Manifest.SoftDeviceBootloader},
		{SoftDevice, manifest.Manifest.SoftDevice},
		{Bootloader, manifest.Manifest.Bootloader},
		{Application, manifest.Manifest.Application},
	}

	pkg := &FirmwarePackage{}
	for _, role := range roles {
		if role.image == nil {
			continue
		}
		unit, err := loadUnit(archive, role.kind, role.image)
		if err != nil {
			return nil, err
		}
		pkg.Units = append(pkg.Units, unit)
	}

	if len(pkg.Units) == 0 {
		return nil, &InvalidManifestError{Err: errors.New("manifest references no images")}
	}
	if err := pkg.CheckValid(); err != nil {
		return nil, &InvalidManifestError{Err: err}
	}

	return pkg, nil
}

// readManifest locates and decodes the manifest entry.
func readManifest(archive *zip.Reader) (*manifestFile, error) {
	f, err := archive.Open(ManifestFileName)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &MissingManifestError{}
		}
		return nil, &InvalidManifestError{Err: err}
	}
	defer func() { _ = f.Close() }()

	var manifest manifestFile
	if err := json.NewDecoder(f).Decode(&manifest); err != nil {
		return nil, &InvalidManifestError{Err: err}
	}

	return &manifest, nil
}

// loadUnit resolves one manifest role into a transfer unit.
func loadUnit(archive *zip.Reader, kind ImageKind, image *manifestImage) (TransferUnit, error) {
	if image.DatFile == "" || image.BinFile == "" {
		return TransferUnit{}, &InvalidManifestError{
			Err: fmt.Errorf("role %s must reference both dat_file and bin_file", kind),
		}
	}

	initData, err := readEntry(archive, image.DatFile)
	if err != nil {
		return TransferUnit{}, err
	}
	firmwareData, err := readEntry(archive, image.BinFile)
	if err != nil {
		return TransferUnit{}, err
	}

	return TransferUnit{
		Kind:         kind,
		InitData:     initData,
		FirmwareData: firmwareData,
	}, nil
}

// readEntry reads a referenced archive entry, requiring it to be non-empty.
func readEntry(archive *zip.Reader, name string) ([]byte, error) {
	f, err := archive.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &MissingFileError{Name: name}
		}
		return nil, fmt.Errorf("failed to open archive entry %q: %w", name, err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read archive entry %q: %w", name, err)
	}
	if len(data) == 0 {
		return nil, &EmptyImageError{Name: name}
	}

	return data, nil
}
