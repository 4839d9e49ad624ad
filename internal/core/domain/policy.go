package domain

// Action is a kind of operation a policy decision is made for.
type Action string

const (
	ActionView    Action = "view"
	ActionCreate  Action = "create"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionApprove Action = "approve"
)

// Actor is the identity a policy decision is made for. The zero Actor
// represents an anonymous caller.
type Actor struct {
	ID   string
	Role Role
}

// Anonymous reports whether the actor carries no authenticated identity.
func (a Actor) Anonymous() bool {
	return a.ID == "" && a.Role == ""
}

// Can is the authorization policy: a pure function of the actor's role and
// identity, the action, and the target article's ownership. It has no side
// effects and returns a plain denial; callers translate false into
// ErrForbidden.
//
//	view            approved: anyone. own: author. all: editor.
//	create          journalist only.
//	update/delete   editor: any. journalist: own only.
//	approve         editor only.
//
// Admins are always allowed. The article argument is ignored for create and
// approve and may be nil there.
func Can(actor Actor, action Action, article *Article) bool {
	if actor.Role == RoleAdmin {
		return true
	}

	switch action {
	case ActionView:
		if article == nil {
			return false
		}
		if article.IsApproved() || actor.Role == RoleEditor {
			return true
		}
		return actor.ID != "" && actor.ID == article.AuthorID

	case ActionCreate:
		return actor.Role == RoleJournalist

	case ActionUpdate, ActionDelete:
		if actor.Role == RoleEditor {
			return true
		}
		return actor.Role == RoleJournalist && article != nil && actor.ID == article.AuthorID

	case ActionApprove:
		return actor.Role == RoleEditor
	}

	return false
}
