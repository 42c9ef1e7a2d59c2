package story

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/gotham-story/internal/tween"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestStory(t *testing.T, drift DriftMode) (*Story, *fakeClock, *tween.Registry) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	tweens := tween.NewRegistry()
	s, err := New(Options{
		Rand:   rand.New(rand.NewSource(7)),
		Clock:  clock,
		Tweens: tweens,
		Drift:  drift,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s, clock, tweens
}

func approx(a, b, eps float32) bool {
	return math.Abs(float64(a-b)) <= float64(eps)
}

func TestBuildCountsAcrossSeeds(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		city := BuildCity(rng)
		criminals := BuildCriminals(rng)

		regular, landmark := 0, 0
		for _, b := range city.Buildings {
			if b.Landmark {
				landmark++
			} else {
				regular++
			}
		}
		if regular != 30 || landmark != 3 {
			t.Fatalf("seed %d: %d regular / %d landmark buildings", seed, regular, landmark)
		}
		if len(criminals) != 5 {
			t.Fatalf("seed %d: %d criminals", seed, len(criminals))
		}
	}
}

func TestBuildingRanges(t *testing.T) {
	city := BuildCity(rand.New(rand.NewSource(42)))
	for i, b := range city.Buildings {
		if b.Landmark {
			if b.Height < 5 || b.Height > 15 || b.Width < 1 || b.Width > 3 || b.Depth < 1 || b.Depth > 3 {
				t.Errorf("landmark %d out of range: %+v", i, b)
			}
			if b.Windows != 0 {
				t.Errorf("landmark %d should have no windows", i)
			}
			continue
		}
		if b.Height < 1 || b.Height > 6 || b.Width < 0.5 || b.Width > 1.5 || b.Depth < 0.5 || b.Depth > 1.5 {
			t.Errorf("building %d out of range: %+v", i, b)
		}
		if max := 4 * int(math.Floor(float64(b.Height))); b.Windows > max {
			t.Errorf("building %d has %d windows, at most %d slots", i, b.Windows, max)
		}
		// Group holds the block plus one child per window.
		if got := len(b.Node.Children); got != b.Windows+1 {
			t.Errorf("building %d has %d children, want %d", i, got, b.Windows+1)
		}
	}
}

func TestWindowOccupancyRoughlySeventyPercent(t *testing.T) {
	slots, lit := 0, 0
	for seed := int64(0); seed < 50; seed++ {
		city := BuildCity(rand.New(rand.NewSource(seed)))
		for _, b := range city.Buildings {
			if b.Landmark {
				continue
			}
			slots += 4 * int(math.Floor(float64(b.Height)))
			lit += b.Windows
		}
	}
	ratio := float64(lit) / float64(slots)
	if ratio < 0.65 || ratio > 0.75 {
		t.Errorf("window occupancy %.3f, want about 0.7", ratio)
	}
}

func TestEmblemHasCape(t *testing.T) {
	s, _, _ := newTestStory(t, DriftBaseline)
	if s.Cape == nil || s.Cape.Name != "cape" {
		t.Fatal("expected cape sub-mesh")
	}
	if len(s.Actor.Children) != 7 {
		t.Errorf("emblem has %d parts, want 7", len(s.Actor.Children))
	}
}

func TestNewStartsAtFirstSection(t *testing.T) {
	s, _, _ := newTestStory(t, DriftBaseline)
	if s.Current() != 0 {
		t.Errorf("current = %d, want 0", s.Current())
	}
	for _, c := range s.Criminals {
		if c.Node.Visible {
			t.Error("criminals should be hidden in the first section")
		}
	}
	if !s.Controls.AutoRotate {
		t.Error("first section auto-rotates")
	}
	if !s.Controls.EnablePan {
		t.Error("main controls pan")
	}
	if got := s.String(); got != "1/4 Who We Are" {
		t.Errorf("String() = %q", got)
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	if _, err := New(Options{Sections: DefaultSections()[:2]}); err == nil {
		t.Error("expected error for short section table")
	}
	if _, err := New(Options{Drift: "sideways"}); err == nil {
		t.Error("expected error for unknown drift mode")
	}
}

func TestScrollToSecondSection(t *testing.T) {
	s, _, _ := newTestStory(t, DriftBaseline)
	const h = 800.0

	idx := SectionIndex(1.5*h, h, SectionCount)
	if idx != 1 {
		t.Fatalf("index = %d, want 1", idx)
	}
	if !s.SetSection(idx) {
		t.Fatal("expected transition")
	}

	if s.CurrentSection().Name != "What We Do" {
		t.Errorf("section name = %q", s.CurrentSection().Name)
	}
	for i, c := range s.Criminals {
		if !c.Node.Visible {
			t.Errorf("criminal %d hidden", i)
		}
	}
	if s.Fighting() {
		t.Error("section 1 is not fighting")
	}
	if s.Controls.AutoRotate {
		t.Error("section 1 does not auto-rotate")
	}
}

func TestScrollPastEndStartsFight(t *testing.T) {
	s, clock, _ := newTestStory(t, DriftBaseline)
	const h = 800.0

	idx := SectionIndex(3.2*h, h, SectionCount)
	if idx != 3 {
		t.Fatalf("index = %d, want 3", idx)
	}
	s.SetSection(idx)
	if !s.Fighting() {
		t.Fatal("section 3 fights")
	}

	clock.Advance(100 * time.Millisecond)
	s.Update(100 * time.Millisecond)

	if s.Actor.Rotation.Z() == 0 {
		t.Error("expected nonzero roll during the fight")
	}
	want := float32(1.5 + math.Sin(0.1*5)*0.3)
	if !approx(s.Primary.Intensity, want, 1e-5) {
		t.Errorf("light intensity = %f, want %f", s.Primary.Intensity, want)
	}

	clock.Advance(100 * time.Millisecond)
	s.Update(200 * time.Millisecond)
	if approx(s.Primary.Intensity, want, 1e-5) {
		t.Error("light intensity should keep pulsing")
	}
}

type sceneSnapshot struct {
	actorPos, actorRot mgl32.Vec3
	camPos, camTarget  mgl32.Vec3
	lightColor         mgl32.Vec3
	light, ambient     float32
	autoRotate         bool
	autoRotateSpeed    float32
	visible            [5]bool
	fighting           bool
	current            int
	fightStart         time.Time
}

func snapshot(s *Story) sceneSnapshot {
	snap := sceneSnapshot{
		actorPos:        s.Actor.Position,
		actorRot:        s.Actor.Rotation,
		camPos:          s.Camera.Position,
		camTarget:       s.Controls.Target,
		lightColor:      s.Primary.Color,
		light:           s.Primary.Intensity,
		ambient:         s.Scene.Ambient.Intensity,
		autoRotate:      s.Controls.AutoRotate,
		autoRotateSpeed: s.Controls.AutoRotateSpeed,
		fighting:        s.fighting,
		current:         s.current,
		fightStart:      s.fightStart,
	}
	for i, c := range s.Criminals {
		snap.visible[i] = c.Node.Visible
	}
	return snap
}

func TestApplySectionIdempotent(t *testing.T) {
	s, _, _ := newTestStory(t, DriftBaseline)
	for i := 0; i < SectionCount; i++ {
		s.ApplySection(i)
		first := snapshot(s)
		s.ApplySection(i)
		if second := snapshot(s); second != first {
			t.Errorf("section %d: re-apply changed state\n%+v\n%+v", i, first, second)
		}
	}
}

func TestVisibilityFollowsSectionFlag(t *testing.T) {
	s, _, _ := newTestStory(t, DriftBaseline)
	for _, order := range [][]int{{0, 1, 2, 3}, {3, 0, 2, 1, 0}} {
		for _, i := range order {
			s.ApplySection(i)
			want := s.Sections()[i].ShowCriminals
			for j, c := range s.Criminals {
				if c.Node.Visible != want {
					t.Errorf("section %d criminal %d visible=%v, want %v", i, j, c.Node.Visible, want)
				}
			}
		}
	}
}

func TestSetSectionOnlyOnChange(t *testing.T) {
	calls := 0
	s, err := New(Options{
		Rand:            rand.New(rand.NewSource(1)),
		OnSectionChange: func(int, SectionConfig) { calls++ },
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	calls = 0

	if s.SetSection(0) {
		t.Error("same index should not transition")
	}
	if !s.SetSection(2) || s.SetSection(2) {
		t.Error("expected exactly one transition to section 2")
	}
	s.SetSection(99)
	if s.Current() != 3 {
		t.Errorf("out of range index should clamp to 3, got %d", s.Current())
	}
	if calls != 2 {
		t.Errorf("OnSectionChange called %d times, want 2", calls)
	}
}

func TestSignalJumpsToFight(t *testing.T) {
	signalled := false
	clock := &fakeClock{now: time.Unix(1000, 0)}
	tweens := tween.NewRegistry()
	s, err := New(Options{
		Rand:     rand.New(rand.NewSource(3)),
		Clock:    clock,
		Tweens:   tweens,
		OnSignal: func() { signalled = true },
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.ApplySection(1)

	s.ActivateSignal()
	if s.Current() != 3 {
		t.Fatalf("section should switch to 3 immediately, got %d", s.Current())
	}
	if got := s.String(); got != "4/4 Join The Mission" {
		t.Errorf("String() = %q", got)
	}
	if !signalled || !s.SignalActive() {
		t.Error("signal beacon should be lit")
	}
	if !tweens.Active(PoseTweenKey) {
		t.Fatal("expected pose tween")
	}

	const frame = 50 * time.Millisecond
	var elapsed time.Duration
	step := func() {
		elapsed += frame
		clock.Advance(frame)
		s.Update(elapsed)
		tweens.Tick(frame)
	}

	for elapsed < 500*time.Millisecond {
		step()
	}
	// Halfway through a cubic in-out the pose is halfway between.
	if !approx(s.Actor.Position.X(), -0.5, 1e-4) {
		t.Errorf("midway x = %f, want -0.5", s.Actor.Position.X())
	}
	if !approx(s.Actor.Rotation.Y(), float32(math.Pi/6+(math.Pi-math.Pi/6)*0.5), 1e-4) {
		t.Errorf("midway yaw = %f", s.Actor.Rotation.Y())
	}

	for elapsed < time.Second {
		step()
	}
	if tweens.Active(PoseTweenKey) {
		t.Error("pose tween should be finished after 1s")
	}
	if !s.Actor.Position.ApproxEqualThreshold(mgl32.Vec3{0, 0, 0}, 1e-5) {
		t.Errorf("final position = %v", s.Actor.Position)
	}
	if !approx(s.Actor.Rotation.Y(), math.Pi, 1e-5) {
		t.Errorf("final yaw = %f, want pi", s.Actor.Rotation.Y())
	}

	clock.Advance(5 * time.Second)
	if s.SignalActive() {
		t.Error("beacon should go out after 5s")
	}
}

func TestIdleMotion(t *testing.T) {
	s, _, _ := newTestStory(t, DriftAccumulate)
	s.Controls.AutoRotate = false
	startY := s.Actor.Position.Y()

	s.Update(250 * time.Millisecond)

	tSec := 0.25
	if !approx(s.Actor.Position.Y()-startY, float32(math.Sin(tSec*2)*0.01), 1e-6) {
		t.Errorf("float step = %f", s.Actor.Position.Y()-startY)
	}
	if !approx(s.Actor.Rotation.Y(), float32(math.Sin(tSec*0.5)*0.1), 1e-6) {
		t.Errorf("yaw = %f", s.Actor.Rotation.Y())
	}
	if !approx(s.Cape.Rotation.Z(), float32(math.Sin(tSec*3)*0.1), 1e-6) {
		t.Errorf("cape roll = %f", s.Cape.Rotation.Z())
	}
}

func TestBaselineDriftStaysBounded(t *testing.T) {
	s, clock, _ := newTestStory(t, DriftBaseline)
	s.ApplySection(3)
	baseY := s.Actor.Position.Y()
	baseCam := s.Camera.Position

	// Irregular frame times would make accumulated drift wander.
	var elapsed time.Duration
	for i := 0; i < 20000; i++ {
		dt := time.Duration(10+i%23) * time.Millisecond
		elapsed += dt
		clock.Advance(dt)
		s.Update(elapsed)
	}

	if dy := s.Actor.Position.Y() - baseY; dy < -0.61 || dy > 0.61 {
		t.Errorf("actor drifted %f from its section height", dy)
	}
	if d := s.Camera.Position.Sub(baseCam).Len(); d > 0.3 {
		t.Errorf("camera wandered %f from its section position", d)
	}
}

func TestCriminalsOrbitAnchors(t *testing.T) {
	s, clock, _ := newTestStory(t, DriftBaseline)
	s.ApplySection(3)

	var elapsed time.Duration
	for i := 0; i < 600; i++ {
		elapsed += 16 * time.Millisecond
		clock.Advance(16 * time.Millisecond)
		s.Update(elapsed)

		for j, c := range s.Criminals {
			off := c.Node.Position.Sub(c.Anchor)
			planar := float32(math.Hypot(float64(off.X()), float64(off.Z())))
			if planar < 2-0.011 || planar > 2+0.011 {
				t.Fatalf("frame %d criminal %d at %f from anchor", i, j, planar)
			}
			if off.Y() < -0.2-1e-5 || off.Y() > 0.2+1e-5 {
				t.Fatalf("frame %d criminal %d wobble %f", i, j, off.Y())
			}
		}
	}
}

func TestHiddenCriminalsDoNotMove(t *testing.T) {
	s, _, _ := newTestStory(t, DriftBaseline)
	before := s.Criminals[0].Node.Position
	s.Update(3 * time.Second)
	if s.Criminals[0].Node.Position != before {
		t.Error("hidden criminals should stay put")
	}
}

func TestResize(t *testing.T) {
	s, _, _ := newTestStory(t, DriftBaseline)
	s.Resize(640, 720)
	if !approx(s.Camera.Aspect, 640.0/720.0, 1e-6) {
		t.Errorf("aspect = %f", s.Camera.Aspect)
	}
}

func TestShadowParticipation(t *testing.T) {
	s, _, _ := newTestStory(t, DriftBaseline)

	if s.Scene.ShadowCaster() != s.Primary {
		t.Fatal("primary light should cast shadows")
	}
	if sh := s.Primary.Shadow; sh.MapSize != 2048 || sh.Near != 0.5 || sh.Far != 50 || sh.Right != 10 {
		t.Errorf("shadow camera = %+v", sh)
	}
	if s.Fill.Shadow != nil {
		t.Error("fill light should not cast shadows")
	}

	ground := s.City.Root.Find("ground")
	if ground.CastShadow || !ground.ReceiveShadow {
		t.Error("ground should only receive shadows")
	}
	for _, name := range []string{"body", "wing_left", "ear_right"} {
		if n := s.Actor.Find(name); !n.CastShadow || !n.ReceiveShadow {
			t.Errorf("emblem %s should cast and receive", name)
		}
	}
	for _, c := range s.Criminals {
		for _, part := range c.Node.Children {
			if !part.CastShadow {
				t.Errorf("criminal %s should cast", part.Name)
			}
		}
	}
	if w := s.City.Root.Find("window"); w != nil && w.CastShadow {
		t.Error("windows should not cast")
	}
}
