package smoke

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixtures_WriteOnce(t *testing.T) {
	fx := NewFixtures()

	assert.False(t, fx.set(FixtureCourseID, ""))
	_, ok := fx.Get(FixtureCourseID)
	assert.False(t, ok)

	assert.True(t, fx.set(FixtureCourseID, "c1"))
	assert.False(t, fx.set(FixtureCourseID, "c2"))
	assert.Equal(t, "c1", fx.Value(FixtureCourseID))
}

func TestFixtures_FirstMissing(t *testing.T) {
	fx := NewFixtures()
	fx.set(FixtureCourseID, "c1")

	missing, ok := fx.firstMissing([]Fixture{FixtureCourseID, FixtureSectionID, FixtureLessonID})
	assert.True(t, ok)
	assert.Equal(t, FixtureSectionID, missing)

	_, ok = fx.firstMissing([]Fixture{FixtureCourseID})
	assert.False(t, ok)
	_, ok = fx.firstMissing(nil)
	assert.False(t, ok)
}

func TestFixtures_SnapshotIsCopy(t *testing.T) {
	fx := NewFixtures()
	fx.set(FixtureLessonID, "l1")

	snap := fx.Snapshot()
	snap[FixtureLessonID] = "changed"
	assert.Equal(t, "l1", fx.Value(FixtureLessonID))
}

func TestPipeline_SkipReason(t *testing.T) {
	p := Pipeline{
		{Name: "a", Produces: []Fixture{FixtureCourseID}},
		{Name: "b", Requires: []Fixture{FixtureCourseID}},
	}
	assert.Equal(t, "missing courseId (produced by a)", p.skipReason(FixtureCourseID))
	assert.Equal(t, "missing lessonId", p.skipReason(FixtureLessonID))
}
