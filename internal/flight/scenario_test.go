package flight

import (
	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/flycam/internal/input"
	"github.com/san-kum/flycam/internal/scene"
)

var _ = Describe("Controller", func() {
	var (
		rig  *scene.Node
		surf *input.Surface
		ctrl *Controller
	)

	BeforeEach(func() {
		rig = scene.NewNode("rig")
		surf = input.NewElement(input.Rect{Width: 640, Height: 480})
		ctrl = New(rig, surf)
	})

	AfterEach(func() {
		ctrl.Dispose()
	})

	Context("flying forward with W", func() {
		BeforeEach(func() {
			ctrl.Bindings.Bind(Forward, 87)
			ctrl.MovementSpeed = 2.0
		})

		It("translates along local -Z while held and stops on release", func() {
			surf.Dispatch(input.NewKeyDown(87, false))
			Expect(ctrl.MoveVector().Z()).To(Equal(-1.0))

			ctrl.Tick(1.0)
			Expect(rig.Position.Z()).To(BeNumerically("~", -2.0, 1e-12))

			surf.Dispatch(input.NewKeyUp(87))
			Expect(ctrl.MoveVector().Z()).To(BeZero())

			before := rig.Position
			ctrl.Tick(1.0)
			Expect(rig.Position).To(Equal(before))
		})

		It("moves relative to the rig's orientation", func() {
			rig.Rotation = mgl64.QuatRotate(mgl64.DegToRad(-90), mgl64.Vec3{0, 1, 0})
			surf.Dispatch(input.NewKeyDown(87, false))
			ctrl.Tick(1.0)

			Expect(rig.Position.X()).To(BeNumerically("~", 2.0, 1e-9))
			Expect(rig.Position.Z()).To(BeNumerically("~", 0.0, 1e-9))
		})
	})

	Context("in drag-to-look mode", func() {
		BeforeEach(func() {
			ctrl.SetDragToLook(true)
		})

		It("returns the hold counter to zero after a click without motion", func() {
			surf.Dispatch(input.NewPointerDown(input.ButtonPrimary))
			Expect(ctrl.HoldCount()).To(Equal(1))
			Expect(ctrl.State().Level(YawLeft)).To(BeZero())
			Expect(ctrl.State().Level(PitchDown)).To(BeZero())

			surf.Dispatch(input.NewPointerUp(input.ButtonPrimary))
			Expect(ctrl.HoldCount()).To(BeZero())
			Expect(ctrl.State().Level(YawLeft)).To(BeZero())
			Expect(ctrl.State().Level(PitchDown)).To(BeZero())
		})

		It("snaps back to centre on release regardless of the last position", func() {
			surf.Dispatch(input.NewPointerDown(input.ButtonPrimary))
			surf.Dispatch(input.NewPointerMove(600, 20))
			Expect(ctrl.RotationVector()).NotTo(Equal(mgl64.Vec3{}))

			surf.Dispatch(input.NewPointerUp(input.ButtonPrimary))
			Expect(ctrl.State().Level(YawLeft)).To(Equal(0.0))
			Expect(ctrl.State().Level(PitchDown)).To(Equal(0.0))
			Expect(ctrl.RotationVector()).To(Equal(mgl64.Vec3{}))
		})
	})

	Context("in always-look mode", func() {
		It("saturates at the surface edges", func() {
			surf.Dispatch(input.NewPointerMove(640, 480))
			Expect(ctrl.State().Level(YawLeft)).To(Equal(-1.0))
			Expect(ctrl.State().Level(PitchDown)).To(Equal(1.0))
		})

		It("rolls the rig while a roll key is held", func() {
			ctrl.RollSpeed = 1
			surf.Dispatch(input.NewKeyDown(input.KeyQ, false))
			for i := 0; i < 10; i++ {
				ctrl.Tick(0.1)
			}
			Expect(rig.Up().X()).To(BeNumerically("<", 0))
			Expect(rig.Forward().Z()).To(BeNumerically("~", -1, 1e-9))
		})
	})

	It("absorbs unknown key codes", func() {
		before := ctrl.State()
		Expect(func() {
			surf.Dispatch(input.NewKeyDown(999, false))
			surf.Dispatch(input.NewKeyUp(999))
		}).NotTo(Panic())
		Expect(ctrl.State()).To(Equal(before))
		Expect(ctrl.MoveVector()).To(Equal(mgl64.Vec3{}))
		Expect(ctrl.RotationVector()).To(Equal(mgl64.Vec3{}))
	})
})
