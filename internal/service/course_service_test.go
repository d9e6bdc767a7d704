package service

import (
	"testing"

	"edu_portfolio_backend/internal/model"
)

func sampleCourse() *model.Course {
	course := &model.Course{
		Title:    "TOPIK II Intensive",
		AuthorID: 10,
		Sections: []model.Section{
			{
				Title: "Introduction",
				Order: 1,
				Videos: []model.Video{
					{Title: "Welcome", Order: 1, IsFree: true},
					{Title: "Grammar deep dive", Order: 2, IsFree: false},
				},
			},
			{
				Title: "Listening",
				Order: 2,
				Videos: []model.Video{
					{Title: "Drill 1", Order: 1, IsFree: false},
					{Title: "Drill 2", Order: 2, IsFree: false},
				},
			},
		},
	}
	course.ID = 1
	return course
}

func countVideos(course *model.Course) int {
	n := 0
	for _, s := range course.Sections {
		n += len(s.Videos)
	}
	return n
}

func TestVisibleCourseAnonymousSeesOnlyFreeVideos(t *testing.T) {
	course := sampleCourse()
	visible := VisibleCourse(course, nil, false)

	if got := countVideos(visible); got != 1 {
		t.Errorf("anonymous sees %d videos, want 1 free preview", got)
	}
	if len(visible.Sections) != 2 {
		t.Errorf("section outline must stay visible, got %d sections", len(visible.Sections))
	}
	if visible.Sections[1].Title != "Listening" {
		t.Errorf("section metadata lost: %q", visible.Sections[1].Title)
	}
	if len(visible.Sections[1].Videos) != 0 {
		t.Error("paid-only section must come back empty")
	}
}

func TestVisibleCourseUnenrolledStudent(t *testing.T) {
	student := &model.User{Role: model.Student}
	student.ID = 55

	visible := VisibleCourse(sampleCourse(), student, false)
	if got := countVideos(visible); got != 1 {
		t.Errorf("unenrolled student sees %d videos, want 1", got)
	}
}

func TestVisibleCoursePrivilegedSeeEverything(t *testing.T) {
	course := sampleCourse()

	author := &model.User{Role: model.Teacher}
	author.ID = course.AuthorID
	admin := &model.User{Role: model.Admin}
	admin.ID = 99
	enrolled := &model.User{Role: model.Student}
	enrolled.ID = 55

	cases := []struct {
		name     string
		user     *model.User
		enrolled bool
	}{
		{"author", author, false},
		{"admin", admin, false},
		{"enrolled student", enrolled, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			visible := VisibleCourse(course, tc.user, tc.enrolled)
			if got := countVideos(visible); got != 4 {
				t.Errorf("%s sees %d videos, want all 4", tc.name, got)
			}
		})
	}
}

func TestOrderCurriculum(t *testing.T) {
	course := &model.Course{
		Sections: []model.Section{
			{Title: "C", Order: 3, Videos: []model.Video{
				{Title: "v3", Order: 3},
				{Title: "v1", Order: 1},
				{Title: "v2", Order: 2},
			}},
			{Title: "A", Order: 1},
			{Title: "B", Order: 2},
		},
	}

	orderCurriculum(course)

	for i, want := range []string{"A", "B", "C"} {
		if course.Sections[i].Title != want {
			t.Errorf("section %d = %q, want %q", i, course.Sections[i].Title, want)
		}
	}
	videos := course.Sections[2].Videos
	for i, want := range []string{"v1", "v2", "v3"} {
		if videos[i].Title != want {
			t.Errorf("video %d = %q, want %q", i, videos[i].Title, want)
		}
	}
}

func TestMeanRating(t *testing.T) {
	rating, total := meanRating([]model.CourseComment{
		{Rating: 4},
		{Rating: 5},
	})
	if rating != 4.5 || total != 2 {
		t.Errorf("got (%v, %d), want (4.5, 2)", rating, total)
	}

	rating, total = meanRating(nil)
	if rating != 0 || total != 0 {
		t.Errorf("empty comments: got (%v, %d), want (0, 0)", rating, total)
	}
}

func TestVisibleCourseDoesNotMutateOriginal(t *testing.T) {
	course := sampleCourse()
	_ = VisibleCourse(course, nil, false)

	if got := countVideos(course); got != 4 {
		t.Errorf("original course mutated, %d videos left of 4", got)
	}
}
