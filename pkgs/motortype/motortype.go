// Package motortype holds the closed tables of Damiao motor constants: the
// motor model -> (position, velocity, torque) full-scale table, the control
// and callback mode enumerations, and the sparse register identifier table
// used by parameter query/set frames.
package motortype

import "fmt"

// Type is a Damiao motor model. The enumeration is closed; Limits() is keyed
// off it directly rather than assuming any relationship between models (only
// PMax happens to be shared across the current table).
type Type int

const (
	DM3507 Type = iota
	DM4310
	DM4310_48V
	DM4340
	DM4340_48V
	DM6006
	DM8006
	DM8009
	DM10010L
	DM10010
	DMH3510
	DMH6215
	DMG6220

	typeCount
)

var names = [typeCount]string{
	DM3507:     "DM3507",
	DM4310:     "DM4310",
	DM4310_48V: "DM4310_48V",
	DM4340:     "DM4340",
	DM4340_48V: "DM4340_48V",
	DM6006:     "DM6006",
	DM8006:     "DM8006",
	DM8009:     "DM8009",
	DM10010L:   "DM10010L",
	DM10010:    "DM10010",
	DMH3510:    "DMH3510",
	DMH6215:    "DMH6215",
	DMG6220:    "DMG6220",
}

// Limits holds the full-scale position (rad), velocity (rad/s) and torque
// (Nm) a motor type supports. The codec clamps every control parameter
// against these before scaling it onto the wire.
type Limits struct {
	PMax float64
	VMax float64
	TMax float64
}

var limits = [typeCount]Limits{
	DM3507:     {PMax: 12.5, VMax: 50.0, TMax: 5.0},
	DM4310:     {PMax: 12.5, VMax: 30.0, TMax: 10.0},
	DM4310_48V: {PMax: 12.5, VMax: 50.0, TMax: 10.0},
	DM4340:     {PMax: 12.5, VMax: 10.0, TMax: 28.0},
	DM4340_48V: {PMax: 12.5, VMax: 10.0, TMax: 28.0},
	DM6006:     {PMax: 12.5, VMax: 45.0, TMax: 1.2},
	DM8006:     {PMax: 12.5, VMax: 45.0, TMax: 3.0},
	DM8009:     {PMax: 12.5, VMax: 25.0, TMax: 54.0},
	DM10010L:   {PMax: 12.5, VMax: 20.0, TMax: 60.0},
	DM10010:    {PMax: 12.5, VMax: 20.0, TMax: 100.0},
	DMH3510:    {PMax: 12.5, VMax: 280.0, TMax: 0.75},
	DMH6215:    {PMax: 12.5, VMax: 100.0, TMax: 13.4},
	DMG6220:    {PMax: 12.5, VMax: 100.0, TMax: 20.0},
}

// Limits returns the position/velocity/torque full-scale for the motor type.
func (t Type) Limits() Limits {
	return limits[t]
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(names) {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return names[t]
}

// Parse resolves a motor type by its canonical name (as used in config files
// and CLI flags), e.g. "DM4310" or "DM4310_48V".
func Parse(name string) (Type, error) {
	for i, n := range names {
		if n == name {
			return Type(i), nil
		}
	}
	return 0, fmt.Errorf("motortype: unknown motor type %q", name)
}

// ControlMode selects which outgoing control frame shape a motor expects.
// The integer codes are stable: they are written onto the wire by the
// "set control mode" broadcast frame.
type ControlMode uint8

const (
	MIT ControlMode = iota + 1
	PosVel
	Vel
	PosForce
)

func (m ControlMode) String() string {
	switch m {
	case MIT:
		return "MIT"
	case PosVel:
		return "POS_VEL"
	case Vel:
		return "VEL"
	case PosForce:
		return "POS_FORCE"
	default:
		return fmt.Sprintf("ControlMode(%d)", uint8(m))
	}
}

// CallbackMode selects how a cell interprets a received frame for its
// receive id: as a state update, a parameter response, or not at all.
type CallbackMode uint8

const (
	CallbackState CallbackMode = iota
	CallbackParam
	CallbackIgnore
)

func (m CallbackMode) String() string {
	switch m {
	case CallbackState:
		return "STATE"
	case CallbackParam:
		return "PARAM"
	case CallbackIgnore:
		return "IGNORE"
	default:
		return fmt.Sprintf("CallbackMode(%d)", uint8(m))
	}
}

// MotorVariable is a register identifier used by parameter query/set frames.
// The table is sparse (0..81); gaps are simply unused identifiers and are
// not assigned names here.
type MotorVariable uint8

const (
	UVValue       MotorVariable = 0
	KTValue       MotorVariable = 1
	OTValue       MotorVariable = 2
	OCValue       MotorVariable = 3
	Acc           MotorVariable = 4
	Dec           MotorVariable = 5
	MaxSpd        MotorVariable = 6
	MstID         MotorVariable = 7
	EscID         MotorVariable = 8
	Timeout       MotorVariable = 9
	CtrlMode      MotorVariable = 10
	Damp          MotorVariable = 11
	Inertia       MotorVariable = 12
	HwVer         MotorVariable = 13
	SwVer         MotorVariable = 14
	SN            MotorVariable = 15
	NPP           MotorVariable = 16
	Rs            MotorVariable = 17
	Ls            MotorVariable = 18
	Flux          MotorVariable = 19
	Gr            MotorVariable = 20
	PMax          MotorVariable = 21
	VMax          MotorVariable = 22
	TMax          MotorVariable = 23
	IBW           MotorVariable = 24
	KPASR         MotorVariable = 25
	KIASR         MotorVariable = 26
	KPAPR         MotorVariable = 27
	KIAPR         MotorVariable = 28
	OVValue       MotorVariable = 29
	GTEFP         MotorVariable = 30
	GTEFN         MotorVariable = 31
	Alias         MotorVariable = 32
	CodeVersion   MotorVariable = 33
	MotorTypeVar  MotorVariable = 34
	CanRateLevel  MotorVariable = 35
	CanIdLevel    MotorVariable = 36
	CBKP          MotorVariable = 37
	CBKD          MotorVariable = 38
	SubVer        MotorVariable = 39
	UOff          MotorVariable = 40
	VOff          MotorVariable = 41
	K1            MotorVariable = 42
	K2            MotorVariable = 43
	MOff          MotorVariable = 44
	Dir           MotorVariable = 45
	PM            MotorVariable = 46
	Xout          MotorVariable = 47
	EnableBKP     MotorVariable = 48
	BkpLoc        MotorVariable = 49
	PMin          MotorVariable = 50
	MasterID      MotorVariable = 51
	IsReduction   MotorVariable = 52
	RunState      MotorVariable = 56
	ErrorState    MotorVariable = 80
	CurAngle      MotorVariable = 81
)

// IsInteger reports whether the register is one of the three identifiers
// that are carried on the wire as a signed 32-bit integer rather than an
// IEEE-754 float32. This set is closed in the current protocol table.
func (v MotorVariable) IsInteger() bool {
	return v == MstID || v == EscID || v == CtrlMode
}
