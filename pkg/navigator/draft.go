package navigator

import (
	"slices"

	"promptly-be/pkg/apiclient"
)

// ProfileDraft is the profile being built during onboarding. A nil pointer or
// nil slice means the field has not been set yet.
type ProfileDraft struct {
	Name             *string
	Age              *int
	Gender           *string
	Orientation      []string
	SelectedTones    []string
	Interests        []string
	UniqueTrait      *string
	ProfileCompleted bool
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return slices.Clone(s)
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func ptrEqual[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (d ProfileDraft) Clone() ProfileDraft {
	return ProfileDraft{
		Name:             clonePtr(d.Name),
		Age:              clonePtr(d.Age),
		Gender:           clonePtr(d.Gender),
		Orientation:      cloneStrings(d.Orientation),
		SelectedTones:    cloneStrings(d.SelectedTones),
		Interests:        cloneStrings(d.Interests),
		UniqueTrait:      clonePtr(d.UniqueTrait),
		ProfileCompleted: d.ProfileCompleted,
	}
}

// Equal compares field values. A nil slice and an empty one are different:
// one is unset, the other was explicitly cleared.
func (d ProfileDraft) Equal(o ProfileDraft) bool {
	return ptrEqual(d.Name, o.Name) &&
		ptrEqual(d.Age, o.Age) &&
		ptrEqual(d.Gender, o.Gender) &&
		(d.Orientation == nil) == (o.Orientation == nil) && slices.Equal(d.Orientation, o.Orientation) &&
		(d.SelectedTones == nil) == (o.SelectedTones == nil) && slices.Equal(d.SelectedTones, o.SelectedTones) &&
		(d.Interests == nil) == (o.Interests == nil) && slices.Equal(d.Interests, o.Interests) &&
		ptrEqual(d.UniqueTrait, o.UniqueTrait) &&
		d.ProfileCompleted == o.ProfileCompleted
}

func (d ProfileDraft) HasName() bool {
	return d.Name != nil && *d.Name != ""
}

func (d ProfileDraft) HasAge() bool {
	return d.Age != nil && *d.Age > 0
}

func (d ProfileDraft) HasGenderOrientation() bool {
	return d.Gender != nil && *d.Gender != "" && len(d.Orientation) > 0
}

// ToUpdate builds the whole-object update sent on every save. Unset fields
// are omitted so the backend leaves them alone.
func (d ProfileDraft) ToUpdate() apiclient.ProfileUpdate {
	completed := d.ProfileCompleted
	return apiclient.ProfileUpdate{
		Name:             clonePtr(d.Name),
		Age:              clonePtr(d.Age),
		Gender:           clonePtr(d.Gender),
		Orientation:      cloneStrings(d.Orientation),
		SelectedVibes:    cloneStrings(d.SelectedTones),
		Interests:        cloneStrings(d.Interests),
		UniqueInterest:   clonePtr(d.UniqueTrait),
		ProfileCompleted: &completed,
	}
}

// DraftFromProfile restores a draft from the canonical record. Empty strings
// and empty lists coming back from the backend count as unset.
func DraftFromProfile(p apiclient.Profile) ProfileDraft {
	d := ProfileDraft{ProfileCompleted: p.ProfileCompleted}
	if p.Name != nil && *p.Name != "" {
		d.Name = clonePtr(p.Name)
	}
	if p.Age != nil && *p.Age > 0 {
		d.Age = clonePtr(p.Age)
	}
	if p.Gender != nil && *p.Gender != "" {
		d.Gender = clonePtr(p.Gender)
	}
	if len(p.Orientation) > 0 {
		d.Orientation = cloneStrings(p.Orientation)
	}
	if len(p.SelectedVibes) > 0 {
		d.SelectedTones = cloneStrings(p.SelectedVibes)
	}
	if len(p.Interests) > 0 {
		d.Interests = cloneStrings(p.Interests)
	}
	if p.UniqueInterest != nil && *p.UniqueInterest != "" {
		d.UniqueTrait = clonePtr(p.UniqueInterest)
	}
	return d
}
