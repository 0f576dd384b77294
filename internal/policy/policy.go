// Package policy encodes the role and ownership matrix as pure decision
// functions. Services consult it before every mutation; it never touches the
// store itself. Callers are expected to resolve "resource exists" first, so a
// missing resource surfaces as NotFound rather than Forbidden.
package policy

import (
	"github.com/forumhub/backend/internal/models"
	"github.com/forumhub/backend/internal/token"
)

// Effect is the outcome of a policy evaluation
type Effect int

const (
	// Allow permits the action
	Allow Effect = iota
	// Forbidden denies the action for an authenticated actor
	Forbidden
	// NotFound denies the action because the target does not resolve
	NotFound
)

// Decision carries the effect plus the specific denial reason
type Decision struct {
	Effect Effect
	Reason string
}

// Allowed reports whether the decision permits the action
func (d Decision) Allowed() bool {
	return d.Effect == Allow
}

func allow() Decision {
	return Decision{Effect: Allow}
}

func forbidden(reason string) Decision {
	return Decision{Effect: Forbidden, Reason: reason}
}

// CanDeletePost decides whether the actor may delete a post owned by authorID
func CanDeletePost(actor token.Identity, authorID int) Decision {
	if actor.ID == authorID || actor.IsAdmin() {
		return allow()
	}
	return forbidden("only the author or an administrator can delete a post")
}

// CanDeleteComment decides whether the actor may delete a comment owned by authorID
func CanDeleteComment(actor token.Identity, authorID int) Decision {
	if actor.ID == authorID || actor.IsAdmin() {
		return allow()
	}
	return forbidden("only the author or an administrator can delete a comment")
}

// CanManageCategories decides whether the actor may create or delete categories
func CanManageCategories(actor token.Identity) Decision {
	if actor.IsAdmin() {
		return allow()
	}
	return forbidden("only administrators can manage categories")
}

// CanListUsers decides whether the actor may list all accounts
func CanListUsers(actor token.Identity) Decision {
	if actor.IsAdmin() {
		return allow()
	}
	return forbidden("only administrators can list users")
}

// CanDeleteUser decides whether the actor may delete the target account.
// The general administrator account is never deletable, and no actor may
// delete itself through this path.
func CanDeleteUser(actor token.Identity, targetID int) Decision {
	if !actor.IsAdmin() {
		return forbidden("only administrators can delete users")
	}
	if targetID == models.GeneralAdminID {
		return forbidden("the general administrator account cannot be deleted")
	}
	if targetID == actor.ID {
		return forbidden("administrators cannot delete their own account")
	}
	return allow()
}

// CanChangeRole decides whether the actor may set the target account's role
// to newRole. The general administrator's role is immutable, self-demotion is
// never allowed, and only the general administrator may demote other admins.
func CanChangeRole(actor token.Identity, target *models.User, newRole models.Role) Decision {
	if !actor.IsAdmin() {
		return forbidden("only administrators can change roles")
	}
	if target.ID == models.GeneralAdminID {
		return forbidden("the general administrator's role cannot be changed")
	}
	if target.ID == actor.ID && newRole == models.RoleNormal {
		return forbidden("administrators cannot demote themselves")
	}
	if target.Role == models.RoleAdmin && newRole == models.RoleNormal && actor.ID != models.GeneralAdminID {
		return forbidden("only the general administrator can demote other administrators")
	}
	return allow()
}
