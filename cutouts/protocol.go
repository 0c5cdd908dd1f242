package cutouts

const (
	ManagerInterface = "xx_cutouts_manager_v1"
	ManagerVersion   = 1

	CutoutsInterface = "xx_cutouts_v1"
)

// xx_cutouts_manager_v1 requests.
const (
	managerDestroy    uint16 = 0
	managerGetCutouts uint16 = 1
)

// xx_cutouts_manager_v1 errors.
const (
	ErrorInvalidRole uint32 = 0
)

// xx_cutouts_v1 requests.
const (
	cutoutsSetUnhandled uint16 = 0
	cutoutsDestroy      uint16 = 1
)

// xx_cutouts_v1 events.
const (
	EventCutoutBox    uint16 = 0
	EventCutoutCorner uint16 = 1
	EventConfigure    uint16 = 2
)

// Type is the kind of a cutout box.
type Type uint32

const (
	TypeCutout Type = 0
)

func (t Type) String() string {
	switch t {
	case TypeCutout:
		return "cutout"
	default:
		return "unknown"
	}
}
