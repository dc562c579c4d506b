// AngelaMos | 2026
// actor.go

package core

// Actor is the authenticated identity making a request, decoded from its
// access token. Role flags are a snapshot taken at issuance time.
type Actor struct {
	ID         string
	IsBusiness bool
	IsAdmin    bool
}

// CanActOn reports whether the actor may mutate a resource owned by
// ownerID: the owner themselves, or an admin.
func (a Actor) CanActOn(ownerID string) bool {
	return a.ID == ownerID || a.IsAdmin
}

// CanPublish reports whether the actor may create listings.
func (a Actor) CanPublish() bool {
	return a.IsBusiness || a.IsAdmin
}
