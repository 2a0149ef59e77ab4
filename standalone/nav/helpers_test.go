package nav

import (
	"fmt"

	"github.com/stretchr/testify/mock"

	"github.com/user-none/padnav/standalone/types"
)

// fakeElement records every contract call
type fakeElement struct {
	name      string
	calls     []string
	canMove   map[types.Direction]bool
	cancel    bool
	panicOn   string
	mode      SubMode
	activated int
	moves     []types.Direction
}

func newFake(name string) *fakeElement {
	return &fakeElement{name: name, canMove: map[types.Direction]bool{}}
}

func (f *fakeElement) record(call string) {
	f.calls = append(f.calls, call)
	if f.panicOn == call {
		panic(fmt.Sprintf("%s: %s failed", f.name, call))
	}
}

func (f *fakeElement) CanMove(dir types.Direction) bool {
	f.record("CanMove")
	return f.canMove[dir]
}

func (f *fakeElement) HandleMove(dir types.Direction) {
	f.moves = append(f.moves, dir)
	f.record("HandleMove")
}

func (f *fakeElement) Activate() {
	f.activated++
	f.record("Activate")
}

func (f *fakeElement) Cancel() bool {
	f.record("Cancel")
	return f.cancel
}

func (f *fakeElement) OnFocusGained() { f.record("OnFocusGained") }
func (f *fakeElement) OnFocusLost()   { f.record("OnFocusLost") }
func (f *fakeElement) Mode() SubMode  { return f.mode }

func (f *fakeElement) count(call string) int {
	n := 0
	for _, c := range f.calls {
		if c == call {
			n++
		}
	}
	return n
}

// leaf creates a navigable node backed by a fake element
func leaf(name string, order int) (*Node, *fakeElement) {
	el := newFake(name)
	return NewNode(name, el).MarkNavigable("", order), el
}

// gridPage builds a page with n leaves named e0..e(n-1) in an implicit grid
func gridPage(n, columns int) (*Page, []*Node, []*fakeElement) {
	root := NewNode("root", nil)
	nodes := make([]*Node, n)
	els := make([]*fakeElement, n)
	for i := 0; i < n; i++ {
		nodes[i], els[i] = leaf(fmt.Sprintf("e%d", i), i)
		root.MustAdd(nodes[i])
	}
	return NewPage("grid", root).SetColumns(columns), nodes, els
}

type mockScroller struct {
	mock.Mock
}

func (m *mockScroller) ScrollIntoView(n *Node) {
	m.Called(n)
}

type mockNativeFocus struct {
	mock.Mock
}

func (m *mockNativeFocus) HasFocus() bool {
	return m.Called().Bool(0)
}

func (m *mockNativeFocus) ClearFocus() {
	m.Called()
}

// fakeModal counts accept/dismiss and can panic
type fakeModal struct {
	accepted  int
	dismissed int
	panics    bool
	onAccept  func()
}

func (m *fakeModal) Accept() {
	m.accepted++
	if m.onAccept != nil {
		m.onAccept()
	}
	if m.panics {
		panic("accept failed")
	}
}

func (m *fakeModal) Dismiss() {
	m.dismissed++
}

// modalSlot is a ModalSource backed by a field
type modalSlot struct {
	modal Modal
}

func (s *modalSlot) CurrentModal() Modal {
	return s.modal
}
