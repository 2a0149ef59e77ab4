package nav

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(nodes []*Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Name()
	}
	return out
}

func TestRegistryIncludesNavigableRoot(t *testing.T) {
	root, _ := leaf("composite", 5)
	child, _ := leaf("inner", 1)
	root.MustAdd(child)

	got := GetNavigableElements(root, "")
	require.Len(t, got, 2)
	assert.Equal(t, []string{"inner", "composite"}, names(got), "result is sorted by order after the root is collected")

	solo, _ := leaf("solo", 0)
	assert.Equal(t, []string{"solo"}, names(GetNavigableElements(solo, "")),
		"a navigable root with no navigable ancestor is still found")
}

func TestRegistryOrderIsStable(t *testing.T) {
	root := NewNode("root", nil)
	a, _ := leaf("a", 1)
	b, _ := leaf("b", 0)
	c, _ := leaf("c", 1)
	d, _ := leaf("d", 0)
	root.MustAdd(a, b, c, d)

	assert.Equal(t, []string{"b", "d", "a", "c"}, names(GetNavigableElements(root, "")))
}

func TestRegistryPrunesIneligibleSubtrees(t *testing.T) {
	root := NewNode("root", nil)
	section := NewNode("section", nil)
	hiddenChild, _ := leaf("hidden-child", 0)
	visible, _ := leaf("visible", 1)
	disabled, _ := leaf("disabled", 2)
	underDisabled, _ := leaf("under-disabled", 3)

	section.MustAdd(hiddenChild)
	disabled.MustAdd(underDisabled)
	root.MustAdd(section, visible, disabled)

	section.SetVisible(false)
	disabled.SetEnabled(false)

	got := names(GetNavigableElements(root, ""))
	assert.Equal(t, []string{"visible"}, got)
	assert.NotContains(t, got, "hidden-child", "child of an invisible container is pruned regardless of its own flags")
	assert.NotContains(t, got, "under-disabled")

	section.SetVisible(true)
	assert.Contains(t, names(GetNavigableElements(root, "")), "hidden-child")
}

func TestRegistryIneligibleRootYieldsNothing(t *testing.T) {
	parent := NewNode("parent", nil)
	root, _ := leaf("root", 0)
	parent.MustAdd(root)
	parent.SetEnabled(false)

	assert.Empty(t, GetNavigableElements(root, ""))
	assert.Empty(t, GetNavigableElements(nil, ""))
}

func TestRegistryGroupFilter(t *testing.T) {
	root := NewNode("root", nil)
	a := NewNode("a", newFake("a")).MarkNavigable("toolbar", 0)
	b := NewNode("b", newFake("b")).MarkNavigable("content", 1)
	c := NewNode("c", newFake("c")).MarkNavigable("toolbar", 2)
	root.MustAdd(a, b, c)

	assert.Equal(t, []string{"a", "c"}, names(GetNavigableElements(root, "toolbar")))
	assert.Equal(t, []string{"a", "b", "c"}, names(GetNavigableElements(root, "")))
}

func TestRegistryFollowsDetach(t *testing.T) {
	root := NewNode("root", nil)
	a, _ := leaf("a", 0)
	b, _ := leaf("b", 1)
	root.MustAdd(a, b)

	a.Detach()
	assert.Equal(t, []string{"b"}, names(GetNavigableElements(root, "")))
	assert.Nil(t, a.Parent())

	b.ClearNavigable()
	assert.Empty(t, GetNavigableElements(root, ""))
}

func TestNodeAddRejectsSharedNodes(t *testing.T) {
	a := NewNode("a", nil)
	b := NewNode("b", nil)
	child := NewNode("child", nil)

	require.NoError(t, a.Add(child))
	err := b.Add(child)
	assert.ErrorIs(t, err, ErrAlreadyAttached)

	assert.Error(t, child.Add(a), "adding an ancestor would create a cycle")
	assert.Panics(t, func() { b.MustAdd(child) })
}

func TestNodeIdentity(t *testing.T) {
	a := NewNode("same", nil)
	b := NewNode("same", nil)
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestValidate(t *testing.T) {
	root := NewNode("root", nil)
	ok, _ := leaf("ok", 0)
	broken := NewNode("broken", nil).MarkNavigable("", 1)
	dup1, _ := leaf("dup", 2)
	dup2, _ := leaf("dup", 3)
	root.MustAdd(ok, broken, dup1, dup2)

	err := Validate(root)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotNavigable))
	assert.Contains(t, err.Error(), `duplicate navigable node "dup"`)

	clean := NewNode("root", nil)
	x, _ := leaf("x", 0)
	clean.MustAdd(x)
	assert.NoError(t, Validate(clean))
}
