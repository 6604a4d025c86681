package serial

import (
	"reflect"
	"testing"
)

func TestSortCandidates(t *testing.T) {
	ports := []string{"/dev/ttyS1", "/dev/ttyUSB0", "/dev/ttyS0", "/dev/ttyACM1", "/dev/ttyACM0"}
	SortCandidates(ports)

	want := []string{"/dev/ttyACM0", "/dev/ttyACM1", "/dev/ttyUSB0", "/dev/ttyS0", "/dev/ttyS1"}
	if !reflect.DeepEqual(ports, want) {
		t.Errorf("SortCandidates = %v, want %v", ports, want)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("/dev/ttyACM0")
	if cfg.Baud != 9600 || cfg.Device != "/dev/ttyACM0" {
		t.Errorf("DefaultConfig = %+v", cfg)
	}
}

func TestOpenNilConfig(t *testing.T) {
	if _, err := Open(nil); err != ErrNilConfig {
		t.Errorf("Open(nil) err = %v, want ErrNilConfig", err)
	}
}
