package story

import (
	"fmt"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// DriftMode selects how the floating and camera-shake motions are integrated.
type DriftMode string

const (
	// DriftBaseline moves by the per-frame change of a bounded function of
	// time, so positions never wander from where the section placed them.
	DriftBaseline DriftMode = "baseline"
	// DriftAccumulate adds the raw per-frame increments, which drift with the
	// frame rate.
	DriftAccumulate DriftMode = "accumulate"
)

// ParseDriftMode validates a drift mode name.
func ParseDriftMode(s string) (DriftMode, error) {
	switch DriftMode(s) {
	case DriftBaseline, DriftAccumulate:
		return DriftMode(s), nil
	}
	return "", fmt.Errorf("unknown drift mode %q (want %q or %q)", s, DriftBaseline, DriftAccumulate)
}

const (
	floatRate      = 2
	floatStep      = 0.01
	yawRate        = 0.5
	yawAmplitude   = 0.1
	capeRate       = 3
	capeAmplitude  = 0.1
	orbitRadius    = 2
	wobbleRate     = 3
	wobbleAmount   = 0.2
	avoidStep      = 0.01
	punchRate      = 10
	punchAmplitude = 0.3
	shakeRateX     = 15
	shakeRateY     = 12
	shakeStep      = 0.02
	pulseBase      = 1.5
	pulseRate      = 5
	pulseAmplitude = 0.3

	// referenceFPS converts per-frame increments into their closed forms.
	referenceFPS = 60
)

// floatOffset integrates floatStep·sin(2t) per frame at the reference rate.
func floatOffset(t float64) float64 {
	return referenceFPS * floatStep / floatRate * (1 - math.Cos(floatRate*t))
}

// shakeOffset integrates the per-frame camera jitter at the reference rate.
func shakeOffset(f float64) (x, y float64) {
	x = referenceFPS * shakeStep / shakeRateX * (1 - math.Cos(shakeRateX*f))
	y = referenceFPS * shakeStep / shakeRateY * math.Sin(shakeRateY*f)
	return x, y
}

// Update advances the idle, criminal and fight animations for a frame at
// elapsed time since start. Orbit controls are updated first so the
// animations apply on top of the controlled camera.
func (s *Story) Update(elapsed time.Duration) {
	t := elapsed.Seconds()

	s.Controls.Update(s.Camera)

	s.updateActor(t)
	s.updateCriminals(t)
	if s.fighting {
		s.updateFight()
	}

	s.lastElapsed = t
}

func (s *Story) updateActor(t float64) {
	switch s.drift {
	case DriftAccumulate:
		s.Actor.Position[1] += float32(math.Sin(t*floatRate) * floatStep)
	default:
		s.Actor.Position[1] += float32(floatOffset(t) - floatOffset(s.lastElapsed))
	}
	s.Actor.Rotation[1] = float32(math.Sin(t*yawRate) * yawAmplitude)

	if s.Cape != nil {
		s.Cape.Rotation[2] = float32(math.Sin(t*capeRate) * capeAmplitude)
	}
}

func (s *Story) updateCriminals(t float64) {
	for _, c := range s.Criminals {
		if !c.Node.Visible {
			continue
		}
		angle := t*float64(c.Speed) + float64(c.Phase)

		var wobble float64
		if s.fighting {
			wobble = math.Sin(t*wobbleRate+float64(c.Phase)) * wobbleAmount
		}
		c.Node.Position = c.Anchor.Add(mgl32.Vec3{
			float32(math.Sin(angle) * orbitRadius),
			float32(wobble),
			float32(math.Cos(angle) * orbitRadius),
		})
		c.Node.Rotation[1] = float32(t * float64(c.Speed) * 2)

		if s.fighting {
			// Step away from the actor; the next frame rewrites the orbit
			// position, so the nudge never accumulates.
			dir := s.Actor.Position.Sub(c.Node.Position)
			if dir.Len() > 0 {
				dir = dir.Normalize()
			}
			c.Node.Position[0] -= dir[0] * avoidStep
			c.Node.Position[2] -= dir[2] * avoidStep
		}
	}
}

func (s *Story) updateFight() {
	f := s.clock.Now().Sub(s.fightStart).Seconds()

	s.Actor.Rotation[2] = float32(math.Sin(f*punchRate) * punchAmplitude)

	switch s.drift {
	case DriftAccumulate:
		s.Camera.Position[0] += float32(math.Sin(f*shakeRateX) * shakeStep)
		s.Camera.Position[1] += float32(math.Cos(f*shakeRateY) * shakeStep)
	default:
		x, y := shakeOffset(f)
		px, py := shakeOffset(s.lastFight)
		s.Camera.Position[0] += float32(x - px)
		s.Camera.Position[1] += float32(y - py)
	}
	s.lastFight = f

	s.Primary.Intensity = float32(pulseBase + math.Sin(f*pulseRate)*pulseAmplitude)
}
