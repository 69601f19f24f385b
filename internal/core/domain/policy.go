package domain

// Requester carries the identity making a request and its administrative flag.
// It is passed explicitly on every service call; there is no ambient or
// thread-local "current user".
type Requester struct {
	UserID  string
	IsStaff bool
}

// CanMutateBooks reports whether the requester may create, update or delete books.
func (r Requester) CanMutateBooks() bool {
	return r.IsStaff
}

// CanViewBorrowing reports whether the requester may read the borrowing owned by ownerID.
func (r Requester) CanViewBorrowing(ownerID string) bool {
	return r.IsStaff || r.UserID == ownerID
}

// CanUpdateBorrowing reports whether the requester may edit the expected return
// date of the borrowing owned by ownerID. Owners may edit their own open
// borrowings; staff may edit any open borrowing.
func (r Requester) CanUpdateBorrowing(ownerID string) bool {
	return r.IsStaff || r.UserID == ownerID
}

// CanDeleteBorrowing reports whether the requester may hard-delete a borrowing.
func (r Requester) CanDeleteBorrowing() bool {
	return r.IsStaff
}

// EffectiveOwnerFilter resolves the owner filter for borrowing listings. A
// non-staff requester is always scoped to itself, regardless of the supplied
// value; staff may filter by any owner or see everything.
func (r Requester) EffectiveOwnerFilter(requested string) string {
	if !r.IsStaff {
		return r.UserID
	}
	return requested
}
