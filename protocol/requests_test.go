package protocol

import (
	"bytes"
	"testing"
)

func TestCreateRequest(t *testing.T) {
	tests := []struct {
		name string
		obj  ObjectType
		size uint32
		want []byte
	}{
		{
			name: "command object",
			obj:  ObjectCommand,
			size: 0x8A,
			want: []byte{0x01, 0x01, 0x8A, 0x00, 0x00, 0x00},
		},
		{
			name: "data object",
			obj:  ObjectData,
			size: 0x1000,
			want: []byte{0x01, 0x02, 0x00, 0x10, 0x00, 0x00},
		},
		{
			name: "large data object",
			obj:  ObjectData,
			size: 0x0100_0000,
			want: []byte{0x01, 0x02, 0x00, 0x00, 0x00, 0x01},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CreateRequest(tt.obj, tt.size)
			if !bytes.Equal(got, tt.want) {
				t.Errorf("CreateRequest() = % X, want % X", got, tt.want)
			}
		})
	}
}

func TestSetPRNRequest(t *testing.T) {
	tests := []struct {
		name  string
		value uint32
		want  []byte
	}{
		{
			name:  "disabled",
			value: 0,
			want:  []byte{0x02, 0x00, 0x00, 0x00, 0x00},
		},
		{
			name:  "every ten packets",
			value: 10,
			want:  []byte{0x02, 0x0A, 0x00, 0x00, 0x00},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SetPRNRequest(tt.value)
			if !bytes.Equal(got, tt.want) {
				t.Errorf("SetPRNRequest() = % X, want % X", got, tt.want)
			}
		})
	}
}

func TestBareRequests(t *testing.T) {
	if got := ChecksumRequest(); !bytes.Equal(got, []byte{0x03}) {
		t.Errorf("ChecksumRequest() = % X, want 03", got)
	}
	if got := ExecuteRequest(); !bytes.Equal(got, []byte{0x04}) {
		t.Errorf("ExecuteRequest() = % X, want 04", got)
	}
}

func TestSelectRequest(t *testing.T) {
	if got := SelectRequest(ObjectCommand); !bytes.Equal(got, []byte{0x06, 0x01}) {
		t.Errorf("SelectRequest(command) = % X, want 06 01", got)
	}
	if got := SelectRequest(ObjectData); !bytes.Equal(got, []byte{0x06, 0x02}) {
		t.Errorf("SelectRequest(data) = % X, want 06 02", got)
	}
}
