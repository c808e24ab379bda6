// Package codec implements the Damiao motor wire protocol: pure functions
// that build outgoing CAN payloads and parse incoming ones. No function here
// performs I/O or retains state between calls; every encoder takes an
// immutable motor identity (send id, limits) and a control-parameter record
// and returns a Frame ready to hand to a socket.
package codec

import (
	"encoding/binary"
	"math"

	"github.com/dmotor/opencan/pkgs/motortype"
)

// BroadcastID is the out-of-band control channel (0x7FF) used for refresh,
// set-mode, and query-param frames. The actual target motor is named in the
// first two payload bytes.
const BroadcastID uint32 = 0x7FF

// Frame is a raw CAN payload bound for a specific 11-bit identifier. Data is
// always 8 bytes for the frame shapes this package builds; CAN-FD carries
// the same 8-byte layout verbatim inside a larger-capacity frame.
type Frame struct {
	ID   uint32
	Data [8]byte
}

// MITParam is the impedance-control command record:
// tau = kp*(q_des-q) + kd*(dq_des-dq) + tau_ff.
type MITParam struct {
	Kp, Kd, Q, Dq, Tau float64
}

// PosVelParam is a position/velocity command record.
type PosVelParam struct {
	Q, Dq float64
}

// PosForceParam is a position/current-limited command record. I is per-unit
// current in [0,1].
type PosForceParam struct {
	Q, Dq, I float64
}

// StateResult is a decoded motor feedback frame.
type StateResult struct {
	Position float64
	Velocity float64
	Torque   float64
	TMos     int32
	TRotor   int32
	Valid    bool
}

// ParamResult is a decoded parameter response frame.
type ParamResult struct {
	RID   motortype.MotorVariable
	Value float64
	Valid bool
}

func clamp(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}

// FloatToUint scales x (already assumed clamped to [xMin, xMax] by the
// caller) onto an unsigned integer of the given bit width.
func FloatToUint(x, xMin, xMax float64, bits uint) uint32 {
	span := xMax - xMin
	offset := x - xMin
	maxVal := float64((uint64(1) << bits) - 1)
	return uint32((offset / span) * maxVal)
}

// UintToFloat is the inverse of FloatToUint.
func UintToFloat(u uint32, xMin, xMax float64, bits uint) float64 {
	span := xMax - xMin
	maxVal := float64((uint64(1) << bits) - 1)
	return xMin + (float64(u)/maxVal)*span
}

// EncodeEnable builds the "enable motor" command frame.
func EncodeEnable(sendID uint32) Frame {
	return Frame{ID: sendID, Data: [8]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFC}}
}

// EncodeDisable builds the "disable motor" command frame.
func EncodeDisable(sendID uint32) Frame {
	return Frame{ID: sendID, Data: [8]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFD}}
}

// EncodeSetZero builds the "flash current position as zero" command frame.
// Destructive on the motor side; callers must gate repeated use.
func EncodeSetZero(sendID uint32) Frame {
	return Frame{ID: sendID, Data: [8]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFE}}
}

// EncodeRefresh builds a broadcast request frame that elicits one state
// frame in reply from the named motor.
func EncodeRefresh(sendID uint32) Frame {
	return Frame{
		ID: BroadcastID,
		Data: [8]byte{
			byte(sendID & 0xFF), byte((sendID >> 8) & 0xFF),
			0xCC, 0x00, 0x00, 0x00, 0x00, 0x00,
		},
	}
}

// EncodeSetMode builds a broadcast "set control mode" frame.
func EncodeSetMode(sendID uint32, mode motortype.ControlMode) Frame {
	return Frame{
		ID: BroadcastID,
		Data: [8]byte{
			byte(sendID & 0xFF), byte((sendID >> 8) & 0xFF),
			0x55, byte(motortype.CtrlMode), byte(mode), 0x00, 0x00, 0x00,
		},
	}
}

// EncodeQueryParam builds a broadcast "query parameter" frame.
func EncodeQueryParam(sendID uint32, rid motortype.MotorVariable) Frame {
	return Frame{
		ID: BroadcastID,
		Data: [8]byte{
			byte(sendID & 0xFF), byte((sendID >> 8) & 0xFF),
			0x33, byte(rid), 0x00, 0x00, 0x00, 0x00,
		},
	}
}

// EncodeMIT builds the impedance-control command frame, clamping every
// field to the motor's limits (and kp/kd to their fixed protocol ranges)
// before scaling. Destination identifier is the motor's send id.
func EncodeMIT(sendID uint32, limits motortype.Limits, p MITParam) Frame {
	q := clamp(p.Q, -limits.PMax, limits.PMax)
	dq := clamp(p.Dq, -limits.VMax, limits.VMax)
	tau := clamp(p.Tau, -limits.TMax, limits.TMax)
	kp := clamp(p.Kp, 0.0, 500.0)
	kd := clamp(p.Kd, 0.0, 5.0)

	qInt := FloatToUint(q, -limits.PMax, limits.PMax, 16)
	dqInt := FloatToUint(dq, -limits.VMax, limits.VMax, 12)
	kpInt := FloatToUint(kp, 0.0, 500.0, 12)
	kdInt := FloatToUint(kd, 0.0, 5.0, 12)
	tauInt := FloatToUint(tau, -limits.TMax, limits.TMax, 12)

	var data [8]byte
	data[0] = byte(qInt >> 8)
	data[1] = byte(qInt & 0xFF)
	data[2] = byte(dqInt >> 4)
	data[3] = byte((dqInt&0x0F)<<4) | byte((kpInt>>8)&0x0F)
	data[4] = byte(kpInt & 0xFF)
	data[5] = byte(kdInt >> 4)
	data[6] = byte((kdInt&0x0F)<<4) | byte((tauInt>>8)&0x0F)
	data[7] = byte(tauInt & 0xFF)

	return Frame{ID: sendID, Data: data}
}

// EncodePosVel builds a position/velocity command frame. Destination
// identifier is the motor's send id + 0x100.
func EncodePosVel(sendID uint32, limits motortype.Limits, p PosVelParam) Frame {
	q := clamp(p.Q, -limits.PMax, limits.PMax)
	dq := clamp(p.Dq, -limits.VMax, limits.VMax)

	qBytes := int32(q * 10000.0)
	dqBytes := int32(dq * 10000.0)

	var data [8]byte
	binary.LittleEndian.PutUint32(data[0:4], uint32(qBytes))
	binary.LittleEndian.PutUint32(data[4:8], uint32(dqBytes))

	return Frame{ID: sendID + 0x100, Data: data}
}

// EncodePosForce builds a position/current-limited command frame.
// Destination identifier is the motor's send id + 0x300.
func EncodePosForce(sendID uint32, limits motortype.Limits, p PosForceParam) Frame {
	q := clamp(p.Q, -limits.PMax, limits.PMax)
	dq := clamp(p.Dq, 0.0, limits.VMax)
	i := clamp(p.I, 0.0, 1.0)

	qBytes := int32(q * 10000.0)
	dqScaled := uint16(dq * 100.0)
	iScaled := uint16(i * 10000.0)

	var data [8]byte
	binary.LittleEndian.PutUint32(data[0:4], uint32(qBytes))
	binary.LittleEndian.PutUint16(data[4:6], dqScaled)
	binary.LittleEndian.PutUint16(data[6:8], iScaled)

	return Frame{ID: sendID + 0x300, Data: data}
}

// DecodeState parses a received state payload. A payload shorter than 8
// bytes yields Valid=false; the caller must leave prior state untouched in
// that case.
func DecodeState(limits motortype.Limits, data []byte) StateResult {
	if len(data) < 8 {
		return StateResult{}
	}

	qRaw := (uint32(data[1]) << 8) | uint32(data[2])
	dqRaw := (uint32(data[3]) << 4) | uint32(data[4]>>4)
	tauRaw := (uint32(data[4]&0x0F) << 8) | uint32(data[5])

	return StateResult{
		Position: UintToFloat(qRaw, -limits.PMax, limits.PMax, 16),
		Velocity: UintToFloat(dqRaw, -limits.VMax, limits.VMax, 12),
		Torque:   UintToFloat(tauRaw, -limits.TMax, limits.TMax, 12),
		TMos:     int32(data[6]),
		TRotor:   int32(data[7]),
		Valid:    true,
	}
}

// DecodeParam parses a received parameter response. Byte 3 is the register
// id; bytes 4..7 are the value, little-endian, typed per
// motortype.MotorVariable.IsInteger.
func DecodeParam(data []byte) ParamResult {
	if len(data) < 8 {
		return ParamResult{}
	}

	rid := motortype.MotorVariable(data[3])
	var value float64
	if rid.IsInteger() {
		value = float64(int32(binary.LittleEndian.Uint32(data[4:8])))
	} else {
		bits := binary.LittleEndian.Uint32(data[4:8])
		value = float64(math.Float32frombits(bits))
	}

	return ParamResult{RID: rid, Value: value, Valid: true}
}
