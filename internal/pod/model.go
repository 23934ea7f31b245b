package pod

import "fmt"

// Model identifies the accessory family that sent the advertisement.
type Model int

const (
	ModelUnknown Model = iota
	ModelAirPods1
	ModelAirPods2
	ModelAirPods3
	ModelAirPodsPro
	ModelAirPodsPro2
	ModelAirPodsPro2USBC
	ModelAirPodsMax
	ModelPowerbeatsPro
	ModelBeatsX
	ModelBeatsFlex
	ModelBeatsSolo3
	ModelBeatsStudio3
	ModelPowerbeats3
)

// Model id nibbles: 6..9 form the full id, 7 alone is the family nibble.
const (
	nibbleModelStart  = 6
	nibbleModelSingle = 7
)

var modelNames = map[Model]string{
	ModelUnknown:         "Unknown",
	ModelAirPods1:        "AirPods (1st gen)",
	ModelAirPods2:        "AirPods (2nd gen)",
	ModelAirPods3:        "AirPods (3rd gen)",
	ModelAirPodsPro:      "AirPods Pro",
	ModelAirPodsPro2:     "AirPods Pro (2nd gen)",
	ModelAirPodsPro2USBC: "AirPods Pro (2nd gen, USB-C)",
	ModelAirPodsMax:      "AirPods Max",
	ModelPowerbeatsPro:   "Powerbeats Pro",
	ModelBeatsX:          "BeatsX",
	ModelBeatsFlex:       "Beats Flex",
	ModelBeatsSolo3:      "Beats Solo3",
	ModelBeatsStudio3:    "Beats Studio3",
	ModelPowerbeats3:     "Powerbeats3",
}

func (m Model) String() string {
	if name, ok := modelNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Model(%d)", int(m))
}

// MarshalText renders the model by name in json and yaml output.
func (m Model) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Single reports whether the model has one physical earpiece and no case.
func (m Model) Single() bool {
	switch m {
	case ModelAirPodsMax, ModelBeatsX, ModelBeatsFlex,
		ModelBeatsSolo3, ModelBeatsStudio3, ModelPowerbeats3:
		return true
	default:
		return false
	}
}

// modelRule matches either the full 16-bit id or the family nibble.
type modelRule struct {
	full   uint16
	single uint8
	// bySingle selects the family nibble comparison.
	bySingle bool
	model    Model
}

func fullID(id uint16, m Model) modelRule { return modelRule{full: id, model: m} }
func singleID(id uint8, m Model) modelRule { return modelRule{single: id, bySingle: true, model: m} }

// modelRules is evaluated top to bottom and the first match wins. The family
// nibble rules are broader than the exact ids and must stay where they are.
var modelRules = []modelRule{
	fullID(0x0220, ModelAirPods1),
	fullID(0x0F20, ModelAirPods2),
	fullID(0x1320, ModelAirPods3),
	fullID(0x0E20, ModelAirPodsPro),
	fullID(0x1420, ModelAirPodsPro2),
	fullID(0x2420, ModelAirPodsPro2USBC),
	singleID(0xA, ModelAirPodsMax),
	singleID(0xB, ModelPowerbeatsPro),
	fullID(0x0520, ModelBeatsX),
	fullID(0x1020, ModelBeatsFlex),
	fullID(0x0620, ModelBeatsSolo3),
	singleID(0x9, ModelBeatsStudio3),
	fullID(0x0320, ModelPowerbeats3),
}

// ModelID returns the 16-bit model id carried in nibbles 6..9, most
// significant nibble first.
func ModelID(n Nibbles) uint16 {
	var id uint16
	for i := nibbleModelStart; i < nibbleModelStart+4; i++ {
		id = id<<4 | uint16(n[i])
	}
	return id
}

// ParseModel identifies the accessory model. Unrecognised ids yield
// ModelUnknown.
func ParseModel(n Nibbles) Model {
	full := ModelID(n)
	single := n[nibbleModelSingle]

	for _, r := range modelRules {
		if r.bySingle && r.single == single {
			return r.model
		}
		if !r.bySingle && r.full == full {
			return r.model
		}
	}
	return ModelUnknown
}
