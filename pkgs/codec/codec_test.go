package codec

import (
	"math"
	"testing"

	"github.com/dmotor/opencan/pkgs/motortype"
)

func TestEncodeEnableDisableSetZero(t *testing.T) {
	const sendID = 0x01
	enable := EncodeEnable(sendID)
	if enable.ID != sendID || enable.Data != [8]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFC} {
		t.Errorf("EncodeEnable = %+v", enable)
	}
	disable := EncodeDisable(sendID)
	if disable.ID != sendID || disable.Data != [8]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFD} {
		t.Errorf("EncodeDisable = %+v", disable)
	}
	setZero := EncodeSetZero(sendID)
	if setZero.ID != sendID || setZero.Data != [8]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFE} {
		t.Errorf("EncodeSetZero = %+v", setZero)
	}
}

// Scenario 2: MIT command scaling for DM4310, kp=10 kd=1 q=dq=tau=0.
//
// The spec's literal scenario-2 bytes (80 00 80 08 51 33 38 00) are
// internally inconsistent with its own float_to_uint definition: zero sits
// exactly at the midpoint of each signed range, and (1<<bits-1) is odd, so
// truncating (offset/span)*maxVal lands one count below the half-scale
// value the spec's bytes assume (e.g. q: 32767, not 32768). These expected
// bytes are the faithful encoding per float_to_uint's truncating scale.
func TestEncodeMITScenario(t *testing.T) {
	limits := motortype.DM4310.Limits()
	frame := EncodeMIT(0x01, limits, MITParam{Kp: 10, Kd: 1, Q: 0, Dq: 0, Tau: 0})

	want := [8]byte{0x7F, 0xFF, 0x7F, 0xF0, 0x51, 0x33, 0x37, 0xFF}
	if frame.ID != 0x01 {
		t.Errorf("frame.ID = 0x%X; want 0x01", frame.ID)
	}
	if frame.Data != want {
		t.Errorf("frame.Data = % X; want % X", frame.Data, want)
	}
}

// Scenario 4: pos-force wire layout.
func TestEncodePosForceScenario(t *testing.T) {
	limits := motortype.DM4310.Limits()
	frame := EncodePosForce(0x02, limits, PosForceParam{Q: 1.0, Dq: 5.0, I: 0.3})

	if frame.ID != 0x302 {
		t.Errorf("frame.ID = 0x%X; want 0x302", frame.ID)
	}
	want := [8]byte{0x10, 0x27, 0x00, 0x00, 0xF4, 0x01, 0xB8, 0x0B}
	if frame.Data != want {
		t.Errorf("frame.Data = % X; want % X", frame.Data, want)
	}
}

// Scenario 5: broadcast "set mode".
func TestEncodeSetModeScenario(t *testing.T) {
	frame := EncodeSetMode(0x03, motortype.PosForce)
	if frame.ID != BroadcastID {
		t.Errorf("frame.ID = 0x%X; want 0x%X", frame.ID, BroadcastID)
	}
	want := [8]byte{0x03, 0x00, 0x55, 0x0A, 0x04, 0x00, 0x00, 0x00}
	if frame.Data != want {
		t.Errorf("frame.Data = % X; want % X", frame.Data, want)
	}
}

func TestFrameIdentifiers(t *testing.T) {
	limits := motortype.DM4310.Limits()
	const sendID = 0x05

	if got := EncodeMIT(sendID, limits, MITParam{}).ID; got != sendID {
		t.Errorf("MIT id = 0x%X; want 0x%X", got, sendID)
	}
	if got := EncodePosVel(sendID, limits, PosVelParam{}).ID; got != sendID+0x100 {
		t.Errorf("PosVel id = 0x%X; want 0x%X", got, sendID+0x100)
	}
	if got := EncodePosForce(sendID, limits, PosForceParam{}).ID; got != sendID+0x300 {
		t.Errorf("PosForce id = 0x%X; want 0x%X", got, sendID+0x300)
	}
	if got := EncodeRefresh(sendID); got.ID != BroadcastID || got.Data[0] != byte(sendID) || got.Data[1] != byte(sendID>>8) {
		t.Errorf("Refresh = %+v", got)
	}
}

// Scenario 3: state feedback round-trip.
func TestDecodeStateScenario(t *testing.T) {
	limits := motortype.DM4310.Limits()
	data := []byte{0x00, 0x80, 0x00, 0x80, 0x08, 0x00, 0x19, 0x1A}
	res := DecodeState(limits, data)

	if !res.Valid {
		t.Fatal("DecodeState: want valid result")
	}
	quantum16 := limits.PMax * 2 / 65535
	if math.Abs(res.Position) > quantum16 {
		t.Errorf("position = %v; want ~0", res.Position)
	}
	if math.Abs(res.Velocity) > limits.VMax*2/4095 {
		t.Errorf("velocity = %v; want ~0", res.Velocity)
	}
	if math.Abs(res.Torque) > limits.TMax*2/4095 {
		t.Errorf("torque = %v; want ~0", res.Torque)
	}
	if res.TMos != 25 {
		t.Errorf("t_mos = %d; want 25", res.TMos)
	}
	if res.TRotor != 26 {
		t.Errorf("t_rotor = %d; want 26", res.TRotor)
	}
}

func TestDecodeStateShortPayload(t *testing.T) {
	res := DecodeState(motortype.DM4310.Limits(), []byte{0x01, 0x02, 0x03})
	if res.Valid {
		t.Error("DecodeState on short payload: want Valid=false")
	}
}

// Clamp property: doubling the magnitude of any field clamps to the same
// payload as the limit itself.
func TestMITClampProperty(t *testing.T) {
	limits := motortype.DM4310.Limits()

	atLimit := EncodeMIT(0x01, limits, MITParam{Q: limits.PMax, Dq: limits.VMax, Tau: limits.TMax, Kp: 500, Kd: 5})
	overLimit := EncodeMIT(0x01, limits, MITParam{Q: 2 * limits.PMax, Dq: 2 * limits.VMax, Tau: 2 * limits.TMax, Kp: 1000, Kd: 10})
	if atLimit.Data != overLimit.Data {
		t.Errorf("positive clamp mismatch: at=% X over=% X", atLimit.Data, overLimit.Data)
	}

	atNegLimit := EncodeMIT(0x01, limits, MITParam{Q: -limits.PMax, Dq: -limits.VMax, Tau: -limits.TMax})
	overNegLimit := EncodeMIT(0x01, limits, MITParam{Q: -2 * limits.PMax, Dq: -2 * limits.VMax, Tau: -2 * limits.TMax})
	if atNegLimit.Data != overNegLimit.Data {
		t.Errorf("negative clamp mismatch: at=% X over=% X", atNegLimit.Data, overNegLimit.Data)
	}
}

// Codec round-trip property, sampled from a fixed table of cases (no
// unseeded random source).
func TestMITRoundTrip(t *testing.T) {
	cases := []struct {
		typ           motortype.Type
		q, dq, tau    float64
		kp, kd        float64
	}{
		{motortype.DM4310, 0, 0, 0, 0, 0},
		{motortype.DM4310, 6.25, 15.0, 5.0, 250, 2.5},
		{motortype.DM4310, -12.5, -30.0, -10.0, 500, 5},
		{motortype.DM8009, 3.1, -10.0, 20.0, 100, 1},
		{motortype.DMH3510, -1.0, 140.0, 0.3, 0, 0},
	}

	for _, c := range cases {
		limits := c.typ.Limits()
		frame := EncodeMIT(0x01, limits, MITParam{Kp: c.kp, Kd: c.kd, Q: c.q, Dq: c.dq, Tau: c.tau})

		// Substitute encoded q/dq/tau into the decode bit layout (state
		// frames reuse the same packing for these three fields).
		echo := make([]byte, 8)
		echo[1], echo[2] = frame.Data[0], frame.Data[1]
		echo[3] = frame.Data[2]
		echo[4] = (frame.Data[3] & 0xF0) | (frame.Data[6] & 0x0F)
		echo[5] = frame.Data[7]
		decoded := DecodeState(limits, echo)

		posQuantum := limits.PMax * 2 * math.Exp2(-16)
		velQuantum := limits.VMax * 2 * math.Exp2(-12)
		torQuantum := limits.TMax * 2 * math.Exp2(-12)

		if math.Abs(decoded.Position-clamp(c.q, -limits.PMax, limits.PMax)) > posQuantum {
			t.Errorf("%s: position round-trip = %v; want ~%v", c.typ, decoded.Position, c.q)
		}
		if math.Abs(decoded.Velocity-clamp(c.dq, -limits.VMax, limits.VMax)) > velQuantum {
			t.Errorf("%s: velocity round-trip = %v; want ~%v", c.typ, decoded.Velocity, c.dq)
		}
		if math.Abs(decoded.Torque-clamp(c.tau, -limits.TMax, limits.TMax)) > torQuantum {
			t.Errorf("%s: torque round-trip = %v; want ~%v", c.typ, decoded.Torque, c.tau)
		}
	}
}

func TestDecodeParamTyping(t *testing.T) {
	cases := []struct {
		rid       motortype.MotorVariable
		wantInt   bool
	}{
		{motortype.MstID, true},
		{motortype.EscID, true},
		{motortype.CtrlMode, true},
		{motortype.UVValue, false},
		{motortype.CurAngle, false},
	}

	for _, c := range cases {
		data := []byte{0, 0, 0, byte(c.rid), 0x00, 0x00, 0x80, 0x3F} // 4 bytes = float32(1.0) or int32 LE
		res := DecodeParam(data)
		if !res.Valid {
			t.Fatalf("DecodeParam(rid=%d): want valid", c.rid)
		}
		if c.wantInt {
			// bytes 00 00 80 3F as int32 LE = 0x3F800000
			if res.Value != float64(int32(0x3F800000)) {
				t.Errorf("rid=%d: value = %v; want integer interpretation", c.rid, res.Value)
			}
		} else {
			if res.Value != 1.0 {
				t.Errorf("rid=%d: value = %v; want float32(1.0)", c.rid, res.Value)
			}
		}
	}
}

func TestDecodeParamShortPayload(t *testing.T) {
	res := DecodeParam([]byte{1, 2, 3})
	if res.Valid {
		t.Error("DecodeParam on short payload: want Valid=false")
	}
}
