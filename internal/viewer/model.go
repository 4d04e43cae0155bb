package viewer

import "regexp"

// LimbKind classifies a skeletal joint for the procedural idle animation.
type LimbKind int

const (
	LimbArm LimbKind = iota
	LimbArmLeft
	LimbArmRight
	LimbLeg
	LimbLegLeft
	LimbLegRight
)

// IsArm reports whether the limb belongs to the arm group.
func (k LimbKind) IsArm() bool {
	return k == LimbArm || k == LimbArmLeft || k == LimbArmRight
}

// IsRight reports whether the limb is on the right side, which mirrors the
// oscillation.
func (k LimbKind) IsRight() bool {
	return k == LimbArmRight || k == LimbLegRight
}

var (
	leftPattern  = regexp.MustCompile(`(left|_l\b|\.l\b| l\b)`)
	rightPattern = regexp.MustCompile(`(right|_r\b|\.r\b| r\b)`)
	armPattern   = regexp.MustCompile(`(arm|forearm|hand|shoulder)`)
	legPattern   = regexp.MustCompile(`(leg|thigh|calf|shin|foot)`)
)

// ClassifyLimb maps a lowercased bone name onto a LimbKind. The second return
// is false for bones that take no part in the idle sway.
func ClassifyLimb(name string) (LimbKind, bool) {
	isLeft := leftPattern.MatchString(name)
	isRight := rightPattern.MatchString(name)

	switch {
	case armPattern.MatchString(name):
		if isLeft {
			return LimbArmLeft, true
		}
		if isRight {
			return LimbArmRight, true
		}
		return LimbArm, true
	case legPattern.MatchString(name):
		if isLeft {
			return LimbLegLeft, true
		}
		if isRight {
			return LimbLegRight, true
		}
		return LimbLeg, true
	}
	return 0, false
}

// Limb is a skeletal joint with its rest rotation.
type Limb struct {
	Name                string
	Kind                LimbKind
	BaseX, BaseY, BaseZ float64
}

// LimbPose is the current procedural rotation of a limb.
type LimbPose struct {
	RotX, RotZ float64
}

// ModelInfo describes a loaded model as far as the state machine cares:
// bounding height (drives the base scale), baked animation clip, skeletal
// limbs and material opacity.
type ModelInfo struct {
	// Height is the bounding-box height of the loaded scene.
	Height float64
	// BaseOpacity is the authored material opacity, usually 1.
	BaseOpacity float64
	// ClipDuration, when positive, marks a baked animation clip the
	// machine advances instead of the procedural limb sway.
	ClipDuration float64
	// Limbs are the joints for the procedural idle animation, used only
	// when no clip exists.
	Limbs []Limb
}

// ModelState holds the current and target transform of one model. Targets
// are rewritten by focus transitions; currents chase them every frame by
// exponential approach.
type ModelState struct {
	Key string

	BaseScale    float64
	CurrentScale float64
	TargetScale  float64

	CurrentX float64
	TargetX  float64

	BaseY    float64
	CurrentY float64
	TargetY  float64

	CurrentVisibility float64
	TargetVisibility  float64

	TargetRotOffset float64
	RotY            float64

	// Phase desynchronizes the idle bob across models.
	Phase float64

	// Render outputs of the last Advance.
	Visible     bool
	PosX, PosY  float64
	RenderScale float64
	Opacity     float64

	// ClipTime is the playhead of the baked clip, when one exists.
	ClipTime float64
	// LimbPoses mirrors info.Limbs when the procedural sway is active.
	LimbPoses []LimbPose

	info ModelInfo
}

// Info returns the immutable load-time description of the model.
func (m *ModelState) Info() ModelInfo { return m.info }
