package nrfpkg

import (
	"strings"
	"testing"
)

func TestTransferUnitCheckValid(t *testing.T) {
	tests := []struct {
		name    string
		unit    TransferUnit
		wantErr string
	}{
		{
			name: "valid",
			unit: TransferUnit{Kind: Application, InitData: []byte{1}, FirmwareData: []byte{2}},
		},
		{
			name:    "empty init data",
			unit:    TransferUnit{Kind: Application, FirmwareData: []byte{2}},
			wantErr: "init data",
		},
		{
			name:    "empty firmware data",
			unit:    TransferUnit{Kind: Application, InitData: []byte{1}},
			wantErr: "firmware data",
		},
		{
			name:    "unknown kind",
			unit:    TransferUnit{Kind: ImageKind(42), InitData: []byte{1}, FirmwareData: []byte{2}},
			wantErr: "image kind",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.unit.CheckValid()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("CheckValid() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("CheckValid() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestFirmwarePackageCheckValid(t *testing.T) {
	valid := TransferUnit{Kind: Bootloader, InitData: []byte{1}, FirmwareData: []byte{2}}
	app := TransferUnit{Kind: Application, InitData: []byte{1}, FirmwareData: []byte{2}}

	if err := (&FirmwarePackage{Units: []TransferUnit{valid, app}}).CheckValid(); err != nil {
		t.Errorf("CheckValid() unexpected error: %v", err)
	}

	if err := (&FirmwarePackage{}).CheckValid(); err == nil {
		t.Error("empty package should be invalid")
	}

	misordered := &FirmwarePackage{Units: []TransferUnit{app, valid}}
	err := misordered.CheckValid()
	if err == nil || !strings.Contains(err.Error(), "ordered last") {
		t.Errorf("misordered package error = %v, want ordering violation", err)
	}
}

func TestImageKindString(t *testing.T) {
	kinds := map[ImageKind]string{
		SoftDevice:           "softdevice",
		Bootloader:           "bootloader",
		SoftDeviceBootloader: "softdevice_bootloader",
		Application:          "application",
		ImageKind(99):        "unknown",
	}

	for kind, want := range kinds {
		if got := kind.String(); got != want {
			t.Errorf("ImageKind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}
