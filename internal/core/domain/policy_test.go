package domain

import "testing"

func TestCan_View(t *testing.T) {
	approved := &Article{ID: "a1", AuthorID: "j1", Status: StatusApproved}
	pending := &Article{ID: "a2", AuthorID: "j1", Status: StatusPending}

	cases := []struct {
		name    string
		actor   Actor
		article *Article
		want    bool
	}{
		{"anonymous sees approved", Actor{}, approved, true},
		{"anonymous blocked from pending", Actor{}, pending, false},
		{"reader sees approved", Actor{ID: "r1", Role: RoleReader}, approved, true},
		{"reader blocked from pending", Actor{ID: "r1", Role: RoleReader}, pending, false},
		{"author sees own pending", Actor{ID: "j1", Role: RoleJournalist}, pending, true},
		{"other journalist blocked", Actor{ID: "j2", Role: RoleJournalist}, pending, false},
		{"editor sees everything", Actor{ID: "e1", Role: RoleEditor}, pending, true},
		{"admin sees everything", Actor{ID: "s1", Role: RoleAdmin}, pending, true},
		{"nil article denied", Actor{ID: "e1", Role: RoleEditor}, nil, false},
	}

	for _, tc := range cases {
		if got := Can(tc.actor, ActionView, tc.article); got != tc.want {
			t.Errorf("%s: Can = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestCan_Create(t *testing.T) {
	cases := []struct {
		role Role
		want bool
	}{
		{RoleJournalist, true},
		{RoleAdmin, true},
		{RoleEditor, false},
		{RoleReader, false},
		{"", false},
	}

	for _, tc := range cases {
		if got := Can(Actor{ID: "u1", Role: tc.role}, ActionCreate, nil); got != tc.want {
			t.Errorf("role %q: Can(create) = %v, want %v", tc.role, got, tc.want)
		}
	}
}

func TestCan_UpdateDelete_Ownership(t *testing.T) {
	article := &Article{ID: "a1", AuthorID: "j1", Status: StatusPending}

	for _, action := range []Action{ActionUpdate, ActionDelete} {
		if !Can(Actor{ID: "e1", Role: RoleEditor}, action, article) {
			t.Errorf("editor must be allowed to %s any article", action)
		}
		if !Can(Actor{ID: "j1", Role: RoleJournalist}, action, article) {
			t.Errorf("author must be allowed to %s own article", action)
		}
		if Can(Actor{ID: "j2", Role: RoleJournalist}, action, article) {
			t.Errorf("non-author journalist must not %s another's article", action)
		}
		if Can(Actor{ID: "r1", Role: RoleReader}, action, article) {
			t.Errorf("reader must not %s", action)
		}
	}
}

func TestCan_Approve_EditorOnly(t *testing.T) {
	article := &Article{ID: "a1", AuthorID: "j1", Status: StatusPending}

	cases := []struct {
		actor Actor
		want  bool
	}{
		{Actor{ID: "e1", Role: RoleEditor}, true},
		{Actor{ID: "s1", Role: RoleAdmin}, true},
		{Actor{ID: "j1", Role: RoleJournalist}, false}, // even the author
		{Actor{ID: "r1", Role: RoleReader}, false},
		{Actor{}, false},
	}

	for _, tc := range cases {
		if got := Can(tc.actor, ActionApprove, article); got != tc.want {
			t.Errorf("actor %+v: Can(approve) = %v, want %v", tc.actor, got, tc.want)
		}
	}
}
