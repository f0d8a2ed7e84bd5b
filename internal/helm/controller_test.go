package helm_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/voyage/internal/helm"
	"github.com/san-kum/voyage/internal/motion"
	"github.com/san-kum/voyage/internal/poi"
)

type countingObserver struct {
	frames []int
	last   helm.Snapshot
}

func (o *countingObserver) OnStep(frame int, s helm.Snapshot) {
	o.frames = append(o.frames, frame)
	o.last = s
}

var islands = []poi.Point{
	{ID: "a", Position: 10, Label: "Alpha"},
	{ID: "b", Position: 50, Label: "Bravo"},
}

func newController(start float64) *helm.Controller {
	opts := helm.DefaultOptions()
	opts.Start = start
	opts.ViewportWidth = 1000
	c, err := helm.New(islands, opts)
	Expect(err).NotTo(HaveOccurred())
	return c
}

func settle(c *helm.Controller, limit int) int {
	for i := 0; i < limit; i++ {
		if !c.Moving() && !c.Dragging() {
			return i
		}
		c.Step(1)
	}
	return limit
}

var _ = Describe("Controller", func() {
	Describe("construction", func() {
		It("starts idle at the configured position", func() {
			c := newController(5)
			Expect(c.Mode()).To(Equal(helm.Idle))
			Expect(c.State().Position).To(Equal(5.0))
			Expect(c.State().Velocity).To(BeZero())
		})

		It("clamps an out-of-range start", func() {
			Expect(newController(140).State().Position).To(Equal(100.0))
		})

		It("rejects invalid motion config", func() {
			opts := helm.DefaultOptions()
			opts.Motion.Friction = 1.2
			_, err := helm.New(islands, opts)
			Expect(err).To(MatchError(motion.ErrInvalidConfig))
		})

		It("rejects a non-positive viewport", func() {
			opts := helm.DefaultOptions()
			opts.ViewportWidth = 0
			_, err := helm.New(islands, opts)
			Expect(err).To(MatchError(motion.ErrInvalidConfig))
		})

		It("rejects duplicate point ids", func() {
			_, err := helm.New([]poi.Point{{ID: "a"}, {ID: "a"}}, helm.DefaultOptions())
			Expect(err).To(MatchError(poi.ErrDuplicateID))
		})
	})

	Describe("click navigate", func() {
		It("arrives exactly at the target and comes to rest", func() {
			c := newController(5)
			c.SeekTo(50)
			Expect(c.Mode()).To(Equal(helm.Seeking))

			ticks := settle(c, 500)
			Expect(ticks).To(BeNumerically("<", 500))

			s := c.State()
			Expect(s.Position).To(Equal(50.0))
			Expect(s.Velocity).To(BeZero())
			Expect(s.Seeking).To(BeFalse())
			Expect(c.Moving()).To(BeFalse())
			Expect(c.Mode()).To(Equal(helm.Idle))
		})

		It("clamps targets outside the track", func() {
			c := newController(50)
			c.SeekTo(250)
			Expect(c.State().Target).To(Equal(100.0))
			settle(c, 1000)
			Expect(c.State().Position).To(Equal(100.0))
		})
	})

	Describe("key nudge and coast", func() {
		It("coasts forward and decays to rest", func() {
			c := newController(50)
			c.Nudge(0.5)
			Expect(c.Mode()).To(Equal(helm.Coasting))

			c.Step(1)
			Expect(c.State().Velocity).To(BeNumerically("~", 0.5*motion.DefaultFriction, 1e-9))
			Expect(c.State().Position).To(BeNumerically("~", 50.5, 1e-9))

			Expect(settle(c, 1000)).To(BeNumerically("<", 1000))
			Expect(c.State().Velocity).To(BeZero())
			Expect(c.Mode()).To(Equal(helm.Idle))
		})

		It("clears a target", func() {
			c := newController(50)
			c.SeekTo(90)
			c.Nudge(-0.5)
			Expect(c.State().Seeking).To(BeFalse())
			Expect(c.Mode()).To(Equal(helm.Coasting))
		})

		It("caps velocity at max velocity", func() {
			c := newController(50)
			for i := 0; i < 10; i++ {
				c.HandleKey(helm.KeyRight)
			}
			Expect(c.State().Velocity).To(Equal(motion.DefaultMaxVelocity))
		})
	})

	Describe("drag", func() {
		It("follows the pointer and carries momentum after release", func() {
			c := newController(5)
			c.BeginDrag(100)
			Expect(c.Mode()).To(Equal(helm.Dragging))

			c.UpdateDrag(150)
			Expect(c.State().Position).To(BeNumerically("~", 10, 1e-9))
			Expect(c.State().Velocity).To(BeNumerically("~", 0.5, 1e-9))

			c.EndDrag()
			Expect(c.Mode()).To(Equal(helm.Coasting))

			released := c.State().Position
			c.Step(1)
			Expect(c.State().Position).To(BeNumerically(">", released))

			prev := c.State().Position
			for i := 0; i < 1000 && c.Moving(); i++ {
				c.Step(1)
				Expect(c.State().Position).To(BeNumerically(">=", prev))
				prev = c.State().Position
			}
			Expect(c.State().Velocity).To(BeZero())
			Expect(c.Mode()).To(Equal(helm.Idle))
		})

		It("ignores ticks while the pointer owns the boat", func() {
			c := newController(30)
			c.BeginDrag(300)
			c.UpdateDrag(320)
			pos := c.State().Position
			for i := 0; i < 100; i++ {
				c.Step(1)
				Expect(c.State().Position).To(Equal(pos))
			}
		})

		It("clears the target and velocity on begin", func() {
			c := newController(30)
			c.SeekTo(80)
			c.Step(1)
			c.BeginDrag(0)
			Expect(c.State().Seeking).To(BeFalse())
			Expect(c.State().Velocity).To(BeZero())
		})

		It("ends with no residual velocity as idle", func() {
			c := newController(30)
			c.BeginDrag(300)
			c.EndDrag()
			Expect(c.Mode()).To(Equal(helm.Idle))
		})

		It("drops nudges while dragging", func() {
			c := newController(30)
			c.BeginDrag(300)
			Expect(c.HandleKey(helm.KeyLeft)).To(BeFalse())
			c.Nudge(0.5)
			Expect(c.State().Velocity).To(BeZero())
		})

		It("is overridden by seekTo", func() {
			c := newController(30)
			c.BeginDrag(300)
			c.SeekTo(70)
			Expect(c.Dragging()).To(BeFalse())
			Expect(c.Mode()).To(Equal(helm.Seeking))
			settle(c, 1000)
			Expect(c.State().Position).To(Equal(70.0))
		})

		It("restarts cleanly when a stale drag is begun again", func() {
			c := newController(30)
			c.BeginDrag(300)
			c.UpdateDrag(400)
			c.BeginDrag(50)
			c.UpdateDrag(60)
			Expect(c.State().Position).To(BeNumerically("~", 41, 1e-9))
		})

		It("times out a gesture that never ends", func() {
			c := newController(30)
			c.BeginDrag(300)
			for i := 0; i < 99; i++ {
				c.Step(3)
			}
			Expect(c.Dragging()).To(BeTrue())
			c.Step(3)
			Expect(c.Dragging()).To(BeFalse())
			Expect(c.Mode()).To(Equal(helm.Idle))
		})

		It("ignores updates and releases without a drag", func() {
			c := newController(30)
			c.UpdateDrag(900)
			c.EndDrag()
			Expect(c.State().Position).To(Equal(30.0))
		})
	})

	Describe("proximity", func() {
		DescribeTable("nearest point id",
			func(pos float64, want string) {
				Expect(newController(pos).Snapshot().NearestID).To(Equal(want))
			},
			Entry("near a", 12.0, "a"),
			Entry("open water", 30.0, ""),
			Entry("on b", 50.0, "b"),
		)

		It("notifies listeners when the nearest point changes", func() {
			c := newController(5)
			var changes [][2]string
			c.OnNearestChange(func(prev, next string) {
				changes = append(changes, [2]string{prev, next})
			})
			c.SeekTo(50)
			settle(c, 500)
			Expect(changes).To(Equal([][2]string{{"a", ""}, {"", "b"}}))
		})

		It("fires the anchor callback only near a point", func() {
			var anchored []string
			c := newController(30)
			c.OnAnchor(func(p poi.Point) { anchored = append(anchored, p.Label) })

			Expect(c.Activate()).To(BeFalse())
			c.SeekTo(50)
			settle(c, 500)
			Expect(c.HandleKey(helm.KeyActivate)).To(BeTrue())
			Expect(anchored).To(Equal([]string{"Bravo"}))
		})
	})

	Describe("pointer input", func() {
		It("sails to the clicked spot when the boat is missed", func() {
			c := newController(5)
			c.PointerDown(750, c.BoatHit(750, 20))
			Expect(c.Mode()).To(Equal(helm.Seeking))
			Expect(c.State().Target).To(Equal(75.0))
		})

		It("drags when the boat is hit", func() {
			c := newController(50)
			Expect(c.BoatHit(510, 20)).To(BeTrue())
			c.PointerDown(510, true)
			c.PointerMove(560)
			Expect(c.State().Position).To(BeNumerically("~", 55, 1e-9))
			c.PointerCancel()
			Expect(c.Dragging()).To(BeFalse())
		})
	})

	It("notifies observers once per step", func() {
		c := newController(50)
		obs := &countingObserver{}
		c.AddObserver(obs)
		c.Nudge(0.3)
		c.Step(1)
		c.Step(1)
		Expect(obs.frames).To(Equal([]int{1, 2}))
		Expect(obs.last.Position).To(Equal(c.State().Position))

		c.RemoveObserver(obs)
		c.Step(1)
		Expect(obs.frames).To(HaveLen(2))
	})

	It("keeps the boat on the track under random input", func() {
		rng := rand.New(rand.NewSource(7))
		c := newController(50)
		for i := 0; i < 5000; i++ {
			switch rng.Intn(7) {
			case 0:
				c.SeekTo(rng.Float64()*300 - 100)
			case 1:
				c.Nudge(rng.Float64()*4 - 2)
			case 2:
				c.BeginDrag(rng.Float64() * 1000)
			case 3:
				c.UpdateDrag(rng.Float64()*5000 - 2000)
			case 4:
				c.EndDrag()
			default:
				c.Step(rng.Float64() * 5)
			}
			s := c.State()
			Expect(s.Position).To(BeNumerically(">=", 0))
			Expect(s.Position).To(BeNumerically("<=", 100))
			Expect(math.IsNaN(s.Velocity)).To(BeFalse())
		}
	})
})
