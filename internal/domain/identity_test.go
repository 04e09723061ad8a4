package domain

import "testing"

func TestIdentityAudienceCategory(t *testing.T) {
	cases := []struct {
		identity Identity
		want     Audience
	}{
		{IdentityMale, AudienceMen},
		{IdentityFemale, AudienceWomen},
		{IdentityTransWoman, AudienceTransWomen},
		{IdentityTransMan, AudienceTransMen},
		{IdentityNonbinary, AudienceNonbinaryPeople},
		{IdentityCouple, AudienceCouples},
		{IdentityOther, AudienceAny},
	}
	for _, c := range cases {
		if got := c.identity.AudienceCategory(); got != c.want {
			t.Errorf("%s: got %s, want %s", c.identity, got, c.want)
		}
	}
}

func TestEveryIdentityHasCategory(t *testing.T) {
	for _, identity := range Identities {
		if !identity.Valid() {
			t.Errorf("identity %s not in the audience table", identity)
		}
	}
	if Identity("vampire").Valid() {
		t.Error("unknown identity reported valid")
	}
}

func TestAudienceSetAccepts(t *testing.T) {
	set := AudienceSet{AudienceWomen, AudienceNonbinaryPeople}
	if !set.Accepts(AudienceWomen) {
		t.Error("explicit member not accepted")
	}
	if set.Accepts(AudienceMen) {
		t.Error("non-member accepted")
	}

	wildcard := AudienceSet{AudienceAny}
	for _, a := range Audiences {
		if !wildcard.Accepts(a) {
			t.Errorf("wildcard rejected %s", a)
		}
	}

	var empty AudienceSet
	if empty.Accepts(AudienceWomen) {
		t.Error("empty set accepted a category")
	}
}
