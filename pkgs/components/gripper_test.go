package components

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/dmotor/opencan/pkgs/device"
	"github.com/dmotor/opencan/pkgs/motortype"
)

func newTestGripper() (*Gripper, *recordingSocket) {
	sock := &recordingSocket{}
	reg := device.NewRegistry(sock)
	g := NewGripper(reg)
	g.Add(device.NewCell(motortype.DM4310, 0x06, 0x16, motortype.PosForce))
	return g, sock
}

func TestGripperToMotorRemap(t *testing.T) {
	cases := []struct {
		position float64
		want     float64
	}{
		{gripperOpen, motorOpen},
		{gripperClosed, motorClosed},
	}
	for _, tc := range cases {
		got := gripperToMotor(tc.position)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("gripperToMotor(%v) = %v; want %v", tc.position, got, tc.want)
		}
	}
}

func TestGripperToMotorIsAffine(t *testing.T) {
	a := gripperToMotor(0.25)
	b := gripperToMotor(0.75)
	mid := gripperToMotor(0.5)
	if math.Abs((a+b)/2-mid) > 1e-9 {
		t.Errorf("gripperToMotor is not affine: (%v+%v)/2 = %v, midpoint = %v", a, b, (a+b)/2, mid)
	}
}

func TestGripperOpenClose(t *testing.T) {
	g, sock := newTestGripper()
	if err := g.Open(10, 1); err != nil {
		t.Fatalf("Open: %s", err)
	}
	if len(sock.written) != 1 {
		t.Fatalf("written = %d; want 1", len(sock.written))
	}
	if sock.written[0].ID != 0x06 {
		t.Errorf("Open frame.ID = %#x; want 0x06 (MIT targets the send id)", sock.written[0].ID)
	}

	sock.written = nil
	if err := g.Close(10, 1); err != nil {
		t.Fatalf("Close: %s", err)
	}
	if len(sock.written) != 1 {
		t.Fatalf("written = %d; want 1", len(sock.written))
	}
	if sock.written[0].ID != 0x06 {
		t.Errorf("Close frame.ID = %#x; want 0x06 (MIT targets the send id)", sock.written[0].ID)
	}
}

func TestGripperSetPositionRawBypassesRemap(t *testing.T) {
	g, sock := newTestGripper()
	if err := g.SetPosition(-0.5, WithRawPosition(true)); err != nil {
		t.Fatalf("SetPosition: %s", err)
	}
	if len(sock.written) != 1 {
		t.Fatalf("written = %d; want 1", len(sock.written))
	}
	// pos-force carries q as int32 LE x 1e4: raw -0.5 rad -> -5000, whereas
	// the remapped value would be gripperToMotor(-0.5) ~ +0.5236 rad.
	if q := int32(binary.LittleEndian.Uint32(sock.written[0].Data[0:4])); q != -5000 {
		t.Errorf("q = %d; want -5000 (raw position, not remapped)", q)
	}
}

func TestGripperOptionsOverrideDefaults(t *testing.T) {
	p := applyGripperOptions([]gripperOptions{WithSpeed(2.0), WithTorque(0.9)})
	if p.speed != 2.0 {
		t.Errorf("speed = %v; want 2.0", p.speed)
	}
	if p.torque != 0.9 {
		t.Errorf("torque = %v; want 0.9", p.torque)
	}
}

func TestGripperOptionsDefaults(t *testing.T) {
	p := applyGripperOptions(nil)
	if p.speed != defaultSpeedRadS {
		t.Errorf("speed = %v; want %v", p.speed, defaultSpeedRadS)
	}
	if p.torque != defaultTorquePU {
		t.Errorf("torque = %v; want %v", p.torque, defaultTorquePU)
	}
}
