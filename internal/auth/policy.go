package auth

import (
	"github.com/docuvault/docuvault/internal"
	"github.com/docuvault/docuvault/internal/user"
)

// Policy is the access control decision logic for the file workflow. Every
// method is a pure function of the actor and the target's attributes; no
// method touches storage. Handlers and services consult it before any
// mutation.
type Policy struct{}

func NewPolicy() *Policy {
	return &Policy{}
}

// MustScopeToOwn reports whether list results for the actor have to be
// restricted to the actor's own uploads inside the actor's department.
// Admins may list and filter freely.
func (p *Policy) MustScopeToOwn(actor *user.User) bool {
	return !actor.IsAdmin()
}

// CanUpload requires the actor to belong to a department. Admin users have
// no department and therefore no upload bucket.
func (p *Policy) CanUpload(actor *user.User) error {
	if !actor.HasDepartment() {
		return internal.NewValidationError("user must belong to a department", internal.ErrCodeMissingDepartment)
	}
	return nil
}

// CanTransitionStatus gates pending -> approved/rejected review decisions.
func (p *Policy) CanTransitionStatus(actor *user.User) error {
	if !actor.IsAdmin() {
		return internal.ErrAdminRequired
	}
	return nil
}

// CanDelete allows admins to delete any file and uploaders to delete their
// own.
func (p *Policy) CanDelete(actor *user.User, uploadedBy string) error {
	if actor.IsAdmin() {
		return nil
	}
	if actor.ID == uploadedBy {
		return nil
	}
	return internal.ErrNotFileOwner
}

func (p *Policy) CanComment(actor *user.User) error {
	if !actor.IsAdmin() {
		return internal.ErrAdminRequired
	}
	return nil
}

// CanReadComments is open to every authenticated user; commentary is not
// department-scoped.
func (p *Policy) CanReadComments(actor *user.User) error {
	return nil
}

func (p *Policy) CanViewGlobalStats(actor *user.User) error {
	if !actor.IsAdmin() {
		return internal.ErrAdminRequired
	}
	return nil
}

// CanViewDepartmentStats is open to every authenticated user regardless of
// department membership.
func (p *Policy) CanViewDepartmentStats(actor *user.User) error {
	return nil
}

func (p *Policy) CanCreateDepartment(actor *user.User) error {
	if !actor.IsAdmin() {
		return internal.ErrAdminRequired
	}
	return nil
}
