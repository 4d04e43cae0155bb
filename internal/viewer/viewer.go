// Package viewer implements the product-focus state machine of the 3D shop
// viewer: camera, lighting and per-model transforms chase pointer-driven
// targets by first-order exponential smoothing, once per display frame.
//
// The package is renderer-agnostic. A front-end feeds pointer events in,
// calls Advance once per frame and reads the resulting poses out; picking is
// delegated to an injected Picker (a ray cast in the real renderer).
package viewer

import (
	"math"
	"math/rand"
)

// Status strings shown in place of the viewer when it cannot run.
const (
	StatusWebGLUnavailable = "WebGL not available"
	StatusLoaderMissing    = "GLTF loader missing"
	StatusUnavailable      = "3D unavailable"
	StatusModelLoadFailed  = "Cannot load model"
	StatusNeedsServer      = "Run with local server (not file://)"
)

// Camera, lighting and pose presets.
const (
	defaultFov = 36.0
	zoomFov    = 28.0
	soloFov    = 31.0

	defaultCameraZ = 6.95
	zoomCameraZ    = 5.55
	soloCameraZ    = 6.1

	defaultLookAtY = -0.24
	zoomLookAtY    = 0.3

	ambientDefault = 0.58
	ambientFocus   = 0.48
	keyDefault     = 1.08
	keyFocus       = 1.2

	// desiredHeight normalizes every model to roughly the same on-screen
	// size regardless of authored scale.
	desiredHeight = 1.02

	gallerySpread    = 1.5
	sideBaseDistance = 2.05
	sideStepDistance = 0.85

	tapThresholdPx    = 5.0
	dragRotPerPx      = 0.01
	idleSpinPerFrame  = 0.0022
	settleDecay       = 0.86
	visibilityEpsilon = 0.02

	settlePromote = -0.05
	settleRelease = 0.08
	settleSwap    = -0.1
)

// Smoothing rates, per frame. Reduced motion collapses them toward snapping.
type rates struct {
	intro, camera, fov, light, lookAt float64
}

var (
	normalRates  = rates{intro: 0.055, camera: 0.065, fov: 0.08, light: 0.08, lookAt: 0.09}
	reducedRates = rates{intro: 0.32, camera: 0.22, fov: 1, light: 0.3, lookAt: 0.24}
)

// Picker resolves a pointer position to the model it hits, typically by ray
// casting into the rendered scene.
type Picker interface {
	Pick(x, y float64) (key string, ok bool)
}

// PickerFunc adapts a function to the Picker interface.
type PickerFunc func(x, y float64) (string, bool)

// Pick calls f.
func (f PickerFunc) Pick(x, y float64) (string, bool) { return f(x, y) }

// Options configures a Viewer instance.
type Options struct {
	// HeroKey is the single model visible before the first tap.
	HeroKey string
	// ReducedMotion collapses easing into near-instant transitions.
	ReducedMotion bool
	// CoarsePointer halves drag sensitivity for touch-like input.
	CoarsePointer bool
	// Picker resolves taps to models. Without one, taps never select.
	Picker Picker
	// Rand seeds the per-model bob phases; nil uses the global source.
	Rand *rand.Rand
}

// Viewer is one instance of the product-focus state machine. It is not
// safe for concurrent use; all calls belong on the UI goroutine, matching
// the single-threaded event model it animates for.
type Viewer struct {
	opts Options

	keys   []string
	models map[string]*ModelState

	activeModelKey string
	showAllModels  bool

	cameraCurrentZ, cameraTargetZ     float64
	cameraCurrentFov, cameraTargetFov float64
	lookAtCurrentY, lookAtTargetY     float64
	ambientCurrent, ambientTarget     float64
	keyCurrent, keyTarget             float64

	introBlend     float64
	settleVelocity float64
	targetRotY     float64

	dragActive bool
	dragMoved  bool
	dragX      float64
	dragY      float64

	elapsed   float64
	suspended bool
}

// New creates a viewer in the initial solo state: only the hero model will
// be visible once loaded.
func New(opts Options) *Viewer {
	v := &Viewer{
		opts:             opts,
		models:           map[string]*ModelState{},
		cameraCurrentZ:   defaultCameraZ,
		cameraTargetZ:    defaultCameraZ,
		cameraCurrentFov: defaultFov,
		cameraTargetFov:  defaultFov,
		lookAtCurrentY:   defaultLookAtY,
		lookAtTargetY:    defaultLookAtY,
		ambientCurrent:   ambientDefault,
		ambientTarget:    ambientDefault,
		keyCurrent:       keyDefault,
		keyTarget:        keyDefault,
	}
	return v
}

func (v *Viewer) randFloat() float64 {
	if v.opts.Rand != nil {
		return v.opts.Rand.Float64()
	}
	return rand.Float64()
}

// AddModel registers a loaded model and recomputes every model's targets so
// late-arriving loads settle into the current pose.
func (v *Viewer) AddModel(key string, info ModelInfo) {
	if key == "" {
		return
	}
	if info.BaseOpacity <= 0 {
		info.BaseOpacity = 1
	}

	safeHeight := math.Max(info.Height, 0.001)
	baseScale := desiredHeight / safeHeight

	visibility := 0.0
	if key == v.opts.HeroKey {
		visibility = 1
	}

	if _, exists := v.models[key]; !exists {
		v.keys = append(v.keys, key)
	}
	v.models[key] = &ModelState{
		Key:               key,
		BaseScale:         baseScale,
		CurrentScale:      baseScale,
		TargetScale:       baseScale,
		BaseY:             -0.2,
		CurrentY:          -0.2,
		TargetY:           -0.2,
		CurrentVisibility: visibility,
		TargetVisibility:  visibility,
		Phase:             v.randFloat() * math.Pi * 2,
		LimbPoses:         make([]LimbPose, len(info.Limbs)),
		info:              info,
	}

	v.applyFocus(v.activeModelKey)
}

// Model returns the state of a registered model, for rendering and tests.
func (v *Viewer) Model(key string) (*ModelState, bool) {
	m, ok := v.models[key]
	return m, ok
}

// Keys returns the model keys in load order.
func (v *Viewer) Keys() []string { return v.keys }

// ActiveModel returns the focused model key, if any.
func (v *Viewer) ActiveModel() (string, bool) {
	return v.activeModelKey, v.activeModelKey != ""
}

// ShowAllModels reports whether the gallery state has been entered.
func (v *Viewer) ShowAllModels() bool { return v.showAllModels }

// CameraZ returns the smoothed camera distance.
func (v *Viewer) CameraZ() float64 { return v.cameraCurrentZ }

// Fov returns the smoothed field of view.
func (v *Viewer) Fov() float64 { return v.cameraCurrentFov }

// LookAtY returns the smoothed camera aim height.
func (v *Viewer) LookAtY() float64 { return v.lookAtCurrentY }

// Lights returns the smoothed ambient and key light intensities.
func (v *Viewer) Lights() (ambient, key float64) {
	return v.ambientCurrent, v.keyCurrent
}

// IntroBlend returns the 0..1 load fade-in scalar.
func (v *Viewer) IntroBlend() float64 { return v.introBlend }

// applyFocus rewrites every target from the selection. A key outside the
// registered set clears the focus.
func (v *Viewer) applyFocus(key string) {
	if _, ok := v.models[key]; !ok {
		key = ""
	}
	v.activeModelKey = key

	if !v.showAllModels {
		v.cameraTargetZ = soloCameraZ
		v.cameraTargetFov = soloFov
		v.lookAtTargetY = zoomLookAtY
		v.ambientTarget = ambientDefault
		v.keyTarget = keyDefault

		heroIdx := v.indexOf(v.opts.HeroKey)
		for idx, name := range v.keys {
			state := v.models[name]
			isHero := name == v.opts.HeroKey
			side := 1.0
			if idx < heroIdx {
				side = -1
			}
			if isHero {
				state.TargetX = 0
				state.TargetScale = state.BaseScale * 1.28
				state.TargetRotOffset = 0
				state.TargetY = state.BaseY + 0.08
				state.TargetVisibility = 1
			} else {
				state.TargetX = side * 2.8
				state.TargetScale = state.BaseScale * 0.001
				state.TargetRotOffset = side * 0.2
				state.TargetY = state.BaseY
				state.TargetVisibility = 0
			}
		}
		return
	}

	if v.activeModelKey == "" {
		v.cameraTargetZ = defaultCameraZ
		v.cameraTargetFov = defaultFov
		v.lookAtTargetY = defaultLookAtY
		v.ambientTarget = ambientDefault
		v.keyTarget = keyDefault
	} else {
		v.cameraTargetZ = zoomCameraZ
		v.cameraTargetFov = zoomFov
		v.lookAtTargetY = zoomLookAtY
		v.ambientTarget = ambientFocus
		v.keyTarget = keyFocus
	}

	activeIndex := v.indexOf(v.activeModelKey)
	for idx, name := range v.keys {
		state := v.models[name]

		if v.activeModelKey == "" {
			state.TargetX = (float64(idx) - float64(len(v.keys)-1)/2) * gallerySpread
			state.TargetScale = state.BaseScale * 0.84
			if state.TargetX < 0 {
				state.TargetRotOffset = -0.08
			} else {
				state.TargetRotOffset = 0.08
			}
			state.TargetY = state.BaseY
			state.TargetVisibility = 1
			continue
		}

		isActive := name == v.activeModelKey
		relativeIndex := idx - activeIndex
		sideSign := 1.0
		if relativeIndex < 0 {
			sideSign = -1
		}
		sideDistance := sideBaseDistance +
			math.Max(0, math.Abs(float64(relativeIndex))-1)*sideStepDistance

		if isActive {
			state.TargetX = 0
			state.TargetScale = state.BaseScale * 1.2
			state.TargetRotOffset = 0
		} else {
			state.TargetX = sideSign * sideDistance
			state.TargetScale = state.BaseScale * 0.54
			if state.TargetX < 0 {
				state.TargetRotOffset = -0.3
			} else {
				state.TargetRotOffset = 0.3
			}
		}
		state.TargetY = state.BaseY + 0.03
		state.TargetVisibility = 1
	}
}

func (v *Viewer) indexOf(key string) int {
	for i, k := range v.keys {
		if k == key {
			return i
		}
	}
	return 0
}

// PointerDown begins a potential drag or tap.
func (v *Viewer) PointerDown(x, y float64) {
	if len(v.models) == 0 {
		return
	}
	v.dragActive = true
	v.dragMoved = false
	v.dragX = x
	v.dragY = y
}

// PointerMove accumulates drag rotation. Movement past the tap threshold in
// one step suppresses the tap-select on release.
func (v *Viewer) PointerMove(x, y float64) {
	if !v.dragActive {
		return
	}
	deltaX := x - v.dragX
	deltaY := y - v.dragY
	if math.Abs(deltaX) > tapThresholdPx || math.Abs(deltaY) > tapThresholdPx {
		v.dragMoved = true
	}
	v.dragX = x
	v.dragY = y

	sensitivity := dragRotPerPx
	if v.opts.CoarsePointer {
		sensitivity /= 2
	}
	v.targetRotY += deltaX * sensitivity
}

// PointerUp finalizes the drag or, when no movement happened, resolves the
// tap via the picker and runs the focus transition.
func (v *Viewer) PointerUp(x, y float64) {
	tapped := v.dragActive && !v.dragMoved
	v.dragActive = false
	v.dragMoved = false

	if !tapped || v.opts.Picker == nil {
		return
	}
	hitKey, ok := v.opts.Picker.Pick(x, y)
	if !ok {
		return
	}
	if _, known := v.models[hitKey]; !known {
		return
	}

	if !v.showAllModels {
		v.showAllModels = true
		v.applyFocus("")
		v.addSettle(settlePromote)
		return
	}

	if v.activeModelKey == hitKey {
		v.applyFocus("")
		v.addSettle(settleRelease)
	} else {
		v.applyFocus(hitKey)
		v.addSettle(settleSwap)
	}
}

// PointerCancel aborts a drag without tap resolution.
func (v *Viewer) PointerCancel() {
	v.dragActive = false
	v.dragMoved = false
}

func (v *Viewer) addSettle(impulse float64) {
	if v.opts.ReducedMotion {
		return
	}
	v.settleVelocity = impulse
}

// Suspend pauses the machine while its page is hidden.
func (v *Viewer) Suspend() { v.suspended = true }

// Resume continues after Suspend. The next Advance picks up from the
// current pose, so a long suspension cannot produce a delta spike.
func (v *Viewer) Resume() { v.suspended = false }

// Advance runs one animation frame. dt is the elapsed wall time since the
// previous frame, in seconds; smoothing rates are per-frame and assume the
// caller is throttled to the display refresh.
func (v *Viewer) Advance(dt float64) {
	if v.suspended {
		return
	}
	v.elapsed += dt
	t := v.elapsed

	r := normalRates
	if v.opts.ReducedMotion {
		r = reducedRates
	}

	v.introBlend += (1 - v.introBlend) * r.intro
	introScaleBoost := 1.0
	if !v.opts.ReducedMotion {
		introScaleBoost = 0.9 + 0.1*v.introBlend
	}

	if !v.dragActive {
		v.targetRotY += idleSpinPerFrame
	}

	if v.opts.ReducedMotion {
		v.settleVelocity = 0
	} else {
		v.settleVelocity *= settleDecay
	}
	v.cameraCurrentZ += (v.cameraTargetZ - v.cameraCurrentZ) * r.camera
	v.cameraCurrentZ += v.settleVelocity

	v.cameraCurrentFov += (v.cameraTargetFov - v.cameraCurrentFov) * r.fov
	v.lookAtCurrentY += (v.lookAtTargetY - v.lookAtCurrentY) * r.lookAt
	v.ambientCurrent += (v.ambientTarget - v.ambientCurrent) * r.light
	v.keyCurrent += (v.keyTarget - v.keyCurrent) * r.light

	for _, key := range v.keys {
		state := v.models[key]
		isActive := key == v.activeModelKey

		state.CurrentX += (state.TargetX - state.CurrentX) * 0.12
		state.CurrentScale += (state.TargetScale - state.CurrentScale) * 0.11
		state.CurrentY += (state.TargetY - state.CurrentY) * 0.12
		state.CurrentVisibility += (state.TargetVisibility - state.CurrentVisibility) * 0.11

		if state.CurrentVisibility <= visibilityEpsilon {
			state.Visible = false
			continue
		}
		state.Visible = true

		state.PosX = state.CurrentX
		state.PosY = state.CurrentY + math.Sin(t*1.2+state.Phase)*0.014
		state.RenderScale = state.CurrentScale * introScaleBoost

		focusFactor := 0.62
		if isActive {
			focusFactor = 1
		}
		rotTarget := v.targetRotY*focusFactor + state.TargetRotOffset
		state.RotY += (rotTarget - state.RotY) * 0.1

		state.Opacity = state.info.BaseOpacity * v.introBlend * state.CurrentVisibility

		if state.info.ClipDuration > 0 {
			state.ClipTime = math.Mod(state.ClipTime+dt, state.info.ClipDuration)
		} else {
			v.swayLimbs(state, t, isActive)
		}
	}
}

// swayLimbs oscillates arm and leg joints so idle character models keep a
// breathing look without an authored clip. Non-focused models sway less.
func (v *Viewer) swayLimbs(state *ModelState, t float64, isActive bool) {
	limbs := state.info.Limbs
	if len(limbs) == 0 {
		return
	}

	wave := math.Sin(t * 2.4)
	amp := 0.65
	if isActive {
		amp = 1
	}

	for i, limb := range limbs {
		side := 1.0
		if limb.Kind.IsRight() {
			side = -1
		}

		if limb.Kind.IsArm() {
			state.LimbPoses[i].RotX = limb.BaseX + wave*0.12*side*amp
			state.LimbPoses[i].RotZ = limb.BaseZ + math.Cos(t*2.4)*0.06*side*amp
		} else {
			state.LimbPoses[i].RotX = limb.BaseX - wave*0.1*side*amp
			state.LimbPoses[i].RotZ = limb.BaseZ
		}
	}
}
