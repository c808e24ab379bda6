package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/dmotor/opencan/pkgs/motortype"
)

// Socket describes the transport the orchestrator opens.
type Socket struct {
	Interface     string
	EnableFD      bool
	RecvTimeoutUS uint32
}

// Topology describes the motors wired to the bus: which types sit at which
// send/receive identifiers, for the arm's joint chain and the gripper.
type Topology struct {
	ArmSendIDs       []uint32
	ArmRecvIDs       []uint32
	ArmMotorTypes    []string
	GripperSendID    uint32
	GripperRecvID    uint32
	GripperMotorType string
}

type Configuration struct {
	Socket Socket

	Topology Topology

	// Session describes a contextual override read from the current
	// working directory, when one is present.
	Session Session
}

// Session is an optional per-run override, e.g. a different interface name
// for a specific rig.
type Session struct {
	Interface string
}

func NewConfig() (*Configuration, error) {
	config := Configuration{}

	// application configuration
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName(".opencan")
	v.AddConfigPath("$HOME/")
	v.AddConfigPath(".")
	_ = v.SafeWriteConfig()

	v.SetDefault("socket.interface", "can0")
	v.SetDefault("socket.enablefd", false)
	v.SetDefault("socket.recvtimeoutus", 10000)
	v.SetDefault("topology.armsendids", []uint32{0x01, 0x02, 0x03, 0x04, 0x05, 0x06})
	v.SetDefault("topology.armrecvids", []uint32{0x11, 0x12, 0x13, 0x14, 0x15, 0x16})
	v.SetDefault("topology.armmotortypes", []string{
		motortype.DM4310.String(), motortype.DM4310.String(), motortype.DM4310.String(),
		motortype.DM4310.String(), motortype.DM4310.String(), motortype.DM4310.String(),
	})
	v.SetDefault("topology.grippersendid", 0x07)
	v.SetDefault("topology.gripperrecvid", 0x17)
	v.SetDefault("topology.grippermotortype", motortype.DM4310.String())

	// contextual session configuration (when current working directory
	// contains a session.json override file)
	s := viper.New()
	s.SetConfigType("json")
	s.SetConfigName("session")
	s.AddConfigPath(".")
	s.ReadInConfig()

	// read both configuration files
	if err := v.ReadInConfig(); err != nil {
		return &Configuration{}, fmt.Errorf("cannot parse config: %s", err.Error())
	}
	if err := v.Unmarshal(&config); err != nil {
		return &config, fmt.Errorf("cannot parse config: %s", err.Error())
	}
	if err := s.ReadInConfig(); err != nil {
		// make session.json fully optional
		if !strings.Contains(err.Error(), "Not Found") {
			return &Configuration{}, fmt.Errorf("cannot parse config: %s", err.Error())
		}
	}
	if err := s.Unmarshal(&config.Session); err != nil {
		return &config, fmt.Errorf("cannot parse config: %s", err.Error())
	}
	if config.Session.Interface != "" {
		config.Socket.Interface = config.Session.Interface
	}

	return &config, nil
}

// ParseArmMotorTypes resolves the topology's string motor type names to
// motortype.Type values.
func (t Topology) ParseArmMotorTypes() ([]motortype.Type, error) {
	types := make([]motortype.Type, len(t.ArmMotorTypes))
	for i, name := range t.ArmMotorTypes {
		mt, err := motortype.Parse(name)
		if err != nil {
			return nil, err
		}
		types[i] = mt
	}
	return types, nil
}

// ParseGripperMotorType resolves the topology's gripper motor type name.
func (t Topology) ParseGripperMotorType() (motortype.Type, error) {
	return motortype.Parse(t.GripperMotorType)
}
